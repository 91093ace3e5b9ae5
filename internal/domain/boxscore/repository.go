package boxscore

import (
	"context"
	"errors"
)

// ErrUnknownEntity is returned by a RowSource that has no rows configured
// for the entity at all.
var ErrUnknownEntity = errors.New("unknown entity")

// RowSource yields the complete raw row set of one player or team.
type RowSource interface {
	ListRows(ctx context.Context, entityID string) ([]RawRow, error)
}

// RowWriter replaces the stored rows of one entity.
type RowWriter interface {
	ReplaceRows(ctx context.Context, entityID string, rows []RawRow) error
}
