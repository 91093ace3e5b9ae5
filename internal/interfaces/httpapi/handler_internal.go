package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/infrastructure/source/tabular"
	"github.com/riskibarqy/mystats/internal/usecase"
)

const maxIngestBodyBytes = 16 << 20

var errPayloadTooLarge = errors.New("request body too large")

// Row cells may be JSON strings, numbers or booleans, as a sheet export
// would carry them.
type replaceRowsRequest struct {
	Rows []map[string]any `json:"rows" validate:"dive,max=256"`
}

type invalidateCacheRequest struct {
	EntityID string `json:"entity_id" validate:"omitempty,max=128"`
}

func (h *Handler) ReplaceRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceRows", pathAttrs(r)...)
	defer span.End()

	if h.ingestion == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingestion is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req replaceRowsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entityID := r.PathValue("entityID")
	rows := make([]boxscore.RawRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, tabular.RowFromObject(row))
	}

	stored, err := h.ingestion.ReplaceRows(ctx, entityID, rows)
	if err != nil {
		h.warn(ctx, "replace rows failed", err, "entity_id", entityID, "rows", len(rows))
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "rows replaced", "entity_id", entityID, "stored", stored)
	writeSuccess(ctx, w, http.StatusOK, ingestResultDTO{EntityID: strings.TrimSpace(entityID), Stored: stored})
}

func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InvalidateCache", pathAttrs(r)...)
	defer span.End()

	var req invalidateCacheRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.stats.Invalidate(ctx, req.EntityID); err != nil {
		h.warn(ctx, "invalidate cache failed", err, "entity_id", req.EntityID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"entity_id": req.EntityID, "status": "invalidated"})
}

// decodeJSONBody treats an empty body as a zero value request.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIngestBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", errPayloadTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
