package memory

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
)

// RowRepository is an in-process row source that also accepts ingestion.
type RowRepository struct {
	mu   sync.RWMutex
	rows map[string][]boxscore.RawRow
}

func NewRowRepository(seed map[string][]boxscore.RawRow) *RowRepository {
	r := &RowRepository{rows: make(map[string][]boxscore.RawRow, len(seed))}
	for entityID, rows := range seed {
		r.rows[entityID] = cloneRows(rows)
	}
	return r
}

func (r *RowRepository) ListRows(_ context.Context, entityID string) ([]boxscore.RawRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.rows[strings.TrimSpace(entityID)]
	if !ok {
		return nil, boxscore.ErrUnknownEntity
	}
	return cloneRows(rows), nil
}

func (r *RowRepository) ReplaceRows(_ context.Context, entityID string, rows []boxscore.RawRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[strings.TrimSpace(entityID)] = cloneRows(rows)
	return nil
}

func cloneRows(rows []boxscore.RawRow) []boxscore.RawRow {
	out := make([]boxscore.RawRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, maps.Clone(row))
	}
	return out
}
