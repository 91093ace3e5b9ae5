package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
)

const maxIngestRows = 5000

type cacheInvalidator interface {
	Invalidate(ctx context.Context, entityID string) error
}

// IngestionService stores raw rows pushed by internal jobs.
type IngestionService struct {
	writer      boxscore.RowWriter
	invalidator cacheInvalidator
}

func NewIngestionService(writer boxscore.RowWriter, invalidator cacheInvalidator) *IngestionService {
	return &IngestionService{writer: writer, invalidator: invalidator}
}

// ReplaceRows swaps the stored rows of entityID and returns how many were kept.
func (s *IngestionService) ReplaceRows(ctx context.Context, entityID string, rows []boxscore.RawRow) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ReplaceRows")
	defer span.End()

	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return 0, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}
	if len(rows) > maxIngestRows {
		return 0, fmt.Errorf("%w: at most %d rows per entity", ErrInvalidInput, maxIngestRows)
	}
	if s.writer == nil {
		return 0, fmt.Errorf("%w: row source is read-only", ErrDependencyUnavailable)
	}

	cleaned := make([]boxscore.RawRow, 0, len(rows))
	for _, row := range rows {
		out := make(boxscore.RawRow, len(row))
		for key, value := range row {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			out[key] = strings.TrimSpace(value)
		}
		if len(out) == 0 {
			continue
		}
		cleaned = append(cleaned, out)
	}

	if err := s.writer.ReplaceRows(ctx, entityID, cleaned); err != nil {
		return 0, fmt.Errorf("%w: replace rows entity=%s: %w", ErrDependencyUnavailable, entityID, err)
	}
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, entityID); err != nil {
			return len(cleaned), err
		}
	}
	return len(cleaned), nil
}
