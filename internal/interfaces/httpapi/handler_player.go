package httpapi

import "net/http"

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers", pathAttrs(r)...)
	defer span.End()

	players, err := h.stats.ListPlayers(ctx)
	if err != nil {
		h.warn(ctx, "list players failed", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(players))
	for _, item := range players {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayerAverages(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerAverages", pathAttrs(r)...)
	defer span.End()

	query, err := h.parseFilterQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	summary, err := h.stats.PlayerAverages(ctx, playerID, query.Filter())
	if err != nil {
		h.warn(ctx, "get player averages failed", err, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerAveragesDTO{
		Player: playerToDTO(summary.Player),
		Filter: filterToDTO(summary.Filter),
		Line:   statLineToDTO(summary.Line),
	})
}

func (h *Handler) ListPlayerGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerGames", pathAttrs(r)...)
	defer span.End()

	query, err := h.parseFilterQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	log, err := h.stats.PlayerGameLog(ctx, playerID, query.Filter())
	if err != nil {
		h.warn(ctx, "list player games failed", err, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerGamesDTO{
		Player: playerToDTO(log.Player),
		Filter: filterToDTO(log.Filter),
		Games:  gamesOrEmpty(log.Games),
	})
}

func (h *Handler) ListPlayerSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerSeasons", pathAttrs(r)...)
	defer span.End()

	playerID := r.PathValue("playerID")
	seasons, err := h.stats.PlayerSeasons(ctx, playerID)
	if err != nil {
		h.warn(ctx, "list player seasons failed", err, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonsToDTO(playerID, seasons))
}
