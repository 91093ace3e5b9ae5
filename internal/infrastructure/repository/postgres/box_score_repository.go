package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	qb "github.com/riskibarqy/mystats/internal/platform/querybuilder"
)

// three params per row keeps a chunk well under the 65535 bind limit
const rowInsertChunk = 1000

// BoxScoreRepository stores raw rows as jsonb in their original order.
type BoxScoreRepository struct {
	db *sqlx.DB
}

func NewBoxScoreRepository(db *sqlx.DB) *BoxScoreRepository {
	return &BoxScoreRepository{db: db}
}

func (r *BoxScoreRepository) ListRows(ctx context.Context, entityID string) ([]boxscore.RawRow, error) {
	entityID = strings.TrimSpace(entityID)
	query, args, err := qb.Select("row_index", "payload").From("box_score_rows").
		Where(qb.Eq("entity_id", entityID)).
		OrderBy("row_index").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select box score rows query: %w", err)
	}

	var rows []boxScoreRowTableModel
	if err := selectRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select box score rows entity=%s: %w", entityID, err)
	}

	if len(rows) == 0 {
		known, err := r.entityExists(ctx, entityID)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, boxscore.ErrUnknownEntity
		}
		return []boxscore.RawRow{}, nil
	}

	out := make([]boxscore.RawRow, 0, len(rows))
	for _, row := range rows {
		var decoded boxscore.RawRow
		if err := sonic.Unmarshal(row.Payload, &decoded); err != nil {
			return nil, fmt.Errorf("decode box score row entity=%s index=%d: %w", entityID, row.RowIndex, err)
		}
		out = append(out, decoded)
	}
	return out, nil
}

// ReplaceRows registers the entity and swaps its rows in one transaction.
func (r *BoxScoreRepository) ReplaceRows(ctx context.Context, entityID string, rows []boxscore.RawRow) error {
	entityID = strings.TrimSpace(entityID)

	models := make([]boxScoreRowInsertModel, 0, len(rows))
	for i, row := range rows {
		payload, err := sonic.MarshalString(row)
		if err != nil {
			return fmt.Errorf("encode box score row entity=%s index=%d: %w", entityID, i, err)
		}
		models = append(models, boxScoreRowInsertModel{EntityID: entityID, RowIndex: i, Payload: payload})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace box score rows: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModels("box_score_entities", []boxScoreEntityModel{{
		EntityID:  entityID,
		RowCount:  len(rows),
		UpdatedAt: time.Now().UTC(),
	}}, `ON CONFLICT (entity_id) DO UPDATE SET
    row_count = EXCLUDED.row_count,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert box score entity query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert box score entity=%s: %w", entityID, err)
	}

	query, args, err = qb.DeleteFrom("box_score_rows").Where(qb.Eq("entity_id", entityID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete box score rows query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete box score rows entity=%s: %w", entityID, err)
	}

	for _, chunk := range chunks(models, rowInsertChunk) {
		query, args, err := qb.InsertModels("box_score_rows", chunk, "")
		if err != nil {
			return fmt.Errorf("build insert box score rows query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert box score rows entity=%s: %w", entityID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace box score rows tx: %w", err)
	}
	return nil
}

func (r *BoxScoreRepository) entityExists(ctx context.Context, entityID string) (bool, error) {
	query, args, err := qb.Select("entity_id", "row_count", "updated_at").From("box_score_entities").
		Where(qb.Eq("entity_id", entityID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select box score entity query: %w", err)
	}

	var entity boxScoreEntityModel
	err = getRetry(ctx, r.db, &entity, query, args...)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select box score entity=%s: %w", entityID, err)
	}
	return true, nil
}
