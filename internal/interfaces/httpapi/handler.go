package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/leaderboard"
	"github.com/riskibarqy/mystats/internal/domain/roster"
	"github.com/riskibarqy/mystats/internal/platform/logging"
	"github.com/riskibarqy/mystats/internal/usecase"
)

// StatsQueries is the read side served by the public routes.
type StatsQueries interface {
	ListTeams(ctx context.Context) ([]roster.Team, error)
	GetTeam(ctx context.Context, teamID string) (roster.Team, error)
	ListPlayers(ctx context.Context) ([]roster.Player, error)
	PlayerAverages(ctx context.Context, playerID string, filter boxscore.Filter) (usecase.PlayerSummary, error)
	PlayerGameLog(ctx context.Context, playerID string, filter boxscore.Filter) (usecase.PlayerGameLog, error)
	PlayerSeasons(ctx context.Context, playerID string) ([]string, error)
	TeamLeaderboard(ctx context.Context, teamID string, filter boxscore.Filter, key leaderboard.SortKey, mode leaderboard.Mode) (usecase.Leaderboard, error)
	TeamRecords(ctx context.Context, teamID string, filter boxscore.Filter) (usecase.TeamRecords, error)
	TeamSeasons(ctx context.Context, teamID string) ([]string, error)
	TeamGames(ctx context.Context, teamID string, filter boxscore.Filter) (usecase.TeamGameLog, error)
	Invalidate(ctx context.Context, entityID string) error
}

// RowIngester stores rows pushed through the internal routes.
type RowIngester interface {
	ReplaceRows(ctx context.Context, entityID string, rows []boxscore.RawRow) (int, error)
}

type Handler struct {
	stats     StatsQueries
	ingestion RowIngester
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(stats StatsQueries, ingestion RowIngester, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		stats:     stats,
		ingestion: ingestion,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// warn logs a failed request with its request id. Client errors stay at
// debug so bad query strings do not flood the log.
func (h *Handler) warn(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "request_id", requestIDFromContext(ctx), "error", err)
	if mapError(err).HTTPStatus < http.StatusInternalServerError {
		h.logger.DebugContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}

type filterQuery struct {
	Season string `validate:"omitempty,max=64"`
	Phase  string `validate:"omitempty,oneof=all regular playoffs"`
}

func (q filterQuery) Filter() boxscore.Filter {
	return boxscore.Filter{Season: q.Season, Phase: q.Phase}
}

type leadersQuery struct {
	filterQuery
	Sort string `validate:"omitempty,max=16"`
	Mode string `validate:"omitempty,oneof=averages totals"`
}

func (h *Handler) parseFilterQuery(ctx context.Context, r *http.Request) (filterQuery, error) {
	values := r.URL.Query()
	q := filterQuery{
		Season: strings.TrimSpace(values.Get("season")),
		Phase:  strings.ToLower(strings.TrimSpace(values.Get("phase"))),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		return filterQuery{}, err
	}
	return q, nil
}

func (h *Handler) parseLeadersQuery(ctx context.Context, r *http.Request) (leadersQuery, error) {
	filter, err := h.parseFilterQuery(ctx, r)
	if err != nil {
		return leadersQuery{}, err
	}
	values := r.URL.Query()
	q := leadersQuery{
		filterQuery: filter,
		Sort:        strings.ToLower(strings.TrimSpace(values.Get("sort"))),
		Mode:        strings.ToLower(strings.TrimSpace(values.Get("mode"))),
	}
	if err := h.validateRequest(ctx, q); err != nil {
		return leadersQuery{}, err
	}
	return q, nil
}
