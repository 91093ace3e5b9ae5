// Package file reads box-score rows from DATA_DIR/{entity}.{csv,json,xlsx}.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/infrastructure/source/tabular"
)

var extensions = []tabular.Format{tabular.FormatCSV, tabular.FormatJSON, tabular.FormatXLSX}

type Source struct {
	dir string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// ListRows reads the first existing file among the supported extensions.
func (s *Source) ListRows(_ context.Context, entityID string) ([]boxscore.RawRow, error) {
	entityID = strings.TrimSpace(entityID)
	if !validSlug(entityID) {
		return nil, boxscore.ErrUnknownEntity
	}

	for _, format := range extensions {
		path := filepath.Join(s.dir, entityID+"."+string(format))
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "open %s", path)
		}

		rows, err := tabular.Decode(format, f)
		_ = f.Close()
		if err != nil {
			return nil, crerr.Wrapf(err, "read %s", path)
		}
		return rows, nil
	}
	return nil, boxscore.ErrUnknownEntity
}

// Entities lists the ids that have a readable file, sorted.
func (s *Source) Entities() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, crerr.Wrapf(err, "read dir %s", s.dir)
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if !slices.Contains(extensions, tabular.Format(ext)) {
			continue
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if !validSlug(id) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

// validSlug keeps entity ids inside the data directory.
func validSlug(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
