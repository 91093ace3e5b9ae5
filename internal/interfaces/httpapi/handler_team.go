package httpapi

import (
	"net/http"

	"github.com/riskibarqy/mystats/internal/domain/leaderboard"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams", pathAttrs(r)...)
	defer span.End()

	teams, err := h.stats.ListTeams(ctx)
	if err != nil {
		h.warn(ctx, "list teams failed", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam", pathAttrs(r)...)
	defer span.End()

	teamID := r.PathValue("teamID")
	team, err := h.stats.GetTeam(ctx, teamID)
	if err != nil {
		h.warn(ctx, "get team failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team))
}

func (h *Handler) GetTeamLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamLeaders", pathAttrs(r)...)
	defer span.End()

	query, err := h.parseLeadersQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	board, err := h.stats.TeamLeaderboard(ctx, teamID, query.Filter(),
		leaderboard.SortKey(query.Sort), leaderboard.Mode(query.Mode))
	if err != nil {
		h.warn(ctx, "get team leaders failed", err, "team_id", teamID, "sort", query.Sort, "mode", query.Mode)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) GetTeamRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRecords", pathAttrs(r)...)
	defer span.End()

	query, err := h.parseFilterQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	records, err := h.stats.TeamRecords(ctx, teamID, query.Filter())
	if err != nil {
		h.warn(ctx, "get team records failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRecordsToDTO(records))
}

func (h *Handler) ListTeamSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamSeasons", pathAttrs(r)...)
	defer span.End()

	teamID := r.PathValue("teamID")
	seasons, err := h.stats.TeamSeasons(ctx, teamID)
	if err != nil {
		h.warn(ctx, "list team seasons failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonsToDTO(teamID, seasons))
}

func (h *Handler) ListTeamGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamGames", pathAttrs(r)...)
	defer span.End()

	query, err := h.parseFilterQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	log, err := h.stats.TeamGames(ctx, teamID, query.Filter())
	if err != nil {
		h.warn(ctx, "list team games failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamGamesDTO{
		Team:   teamToDTO(log.Team),
		Filter: filterToDTO(log.Filter),
		Wins:   log.Wins,
		Losses: log.Losses,
		Ties:   log.Ties,
		Games:  gamesOrEmpty(log.Games),
	})
}
