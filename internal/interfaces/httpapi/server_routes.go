package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/leaders", handler.GetTeamLeaders)
	mux.HandleFunc("GET /v1/teams/{teamID}/records", handler.GetTeamRecords)
	mux.HandleFunc("GET /v1/teams/{teamID}/seasons", handler.ListTeamSeasons)
	mux.HandleFunc("GET /v1/teams/{teamID}/games", handler.ListTeamGames)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/averages", handler.GetPlayerAverages)
	mux.HandleFunc("GET /v1/players/{playerID}/games", handler.ListPlayerGames)
	mux.HandleFunc("GET /v1/players/{playerID}/seasons", handler.ListPlayerSeasons)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/rows/{entityID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ReplaceRows)))
	mux.Handle("POST /v1/internal/cache/invalidate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.InvalidateCache)))
}
