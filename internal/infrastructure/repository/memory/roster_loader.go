package memory

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/mystats/internal/domain/roster"
)

const (
	teamsFile   = "teams.json"
	playersFile = "players.json"
)

// LoadRosterDir reads teams.json and players.json from dir. A missing file
// yields an empty list.
func LoadRosterDir(dir string) ([]roster.Team, []roster.Player, error) {
	var teams []roster.Team
	if raw, ok, err := readOptional(filepath.Join(dir, teamsFile)); err != nil {
		return nil, nil, err
	} else if ok {
		if teams, err = DecodeTeams(raw); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", teamsFile, err)
		}
	}

	var players []roster.Player
	if raw, ok, err := readOptional(filepath.Join(dir, playersFile)); err != nil {
		return nil, nil, err
	} else if ok {
		if players, err = DecodePlayers(raw); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", playersFile, err)
		}
	}
	return teams, players, nil
}

func readOptional(path string) ([]byte, bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, true, nil
}

type teamDoc struct {
	Slug   string   `json:"slug"`
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Logo   string   `json:"logo"`
	League string   `json:"league"`
	Roster []string `json:"roster"`
}

type playerDoc struct {
	Slug     string     `json:"slug"`
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Number   flexString `json:"number"`
	Position string     `json:"position"`
	Image    string     `json:"image"`
	Team     string     `json:"team"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		*f = ""
	case raw[0] == '"':
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	default:
		if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
			return fmt.Errorf("number must be a string or number: %s", raw)
		}
		*f = flexString(raw)
	}
	return nil
}

// DecodeTeams accepts an array of teams or an object keyed by slug.
func DecodeTeams(raw []byte) ([]roster.Team, error) {
	docs, err := decodeDocs[teamDoc](raw, func(d *teamDoc, key string) {
		if d.Slug == "" {
			d.Slug = firstNonEmpty(d.ID, key)
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]roster.Team, 0, len(docs))
	for _, d := range docs {
		team := roster.Team{
			ID:     strings.TrimSpace(d.Slug),
			Name:   strings.TrimSpace(d.Name),
			Logo:   strings.TrimSpace(d.Logo),
			League: strings.TrimSpace(d.League),
		}
		for _, playerID := range d.Roster {
			team.Roster = append(team.Roster, strings.TrimSpace(playerID))
		}
		if err := team.Validate(); err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	return out, nil
}

// DecodePlayers accepts an array of players or an object keyed by slug.
func DecodePlayers(raw []byte) ([]roster.Player, error) {
	docs, err := decodeDocs[playerDoc](raw, func(d *playerDoc, key string) {
		if d.Slug == "" {
			d.Slug = firstNonEmpty(d.ID, key)
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]roster.Player, 0, len(docs))
	for _, d := range docs {
		player := roster.Player{
			ID:       strings.TrimSpace(d.Slug),
			Name:     strings.TrimSpace(d.Name),
			Number:   string(d.Number),
			Position: strings.TrimSpace(d.Position),
			Image:    strings.TrimSpace(d.Image),
			TeamID:   strings.TrimSpace(d.Team),
		}
		if err := player.Validate(); err != nil {
			return nil, err
		}
		out = append(out, player)
	}
	return out, nil
}

// decodeDocs keeps array order; keyed objects are ordered by key.
func decodeDocs[T any](raw []byte, withKey func(doc *T, key string)) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var docs []T
		if err := sonic.Unmarshal(trimmed, &docs); err != nil {
			return nil, err
		}
		for i := range docs {
			withKey(&docs[i], "")
		}
		return docs, nil
	}

	var keyed map[string]T
	if err := sonic.Unmarshal(trimmed, &keyed); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(keyed))
	for key := range keyed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	docs := make([]T, 0, len(keyed))
	for _, key := range keys {
		doc := keyed[key]
		withKey(&doc, key)
		docs = append(docs, doc)
	}
	return docs, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
