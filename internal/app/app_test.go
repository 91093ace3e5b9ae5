package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/mystats/internal/config"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/roster"
	"github.com/riskibarqy/mystats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/mystats/internal/observability"
	"github.com/riskibarqy/mystats/internal/platform/cache"
	"github.com/riskibarqy/mystats/internal/platform/logging"
)

const testToken = "job-secret"

func newMemoryRouter(t *testing.T) http.Handler {
	t.Helper()

	rows := memory.NewRowRepository(map[string][]boxscore.RawRow{
		"ana": {
			{"Game": "g1", "Date": "2024-01-10", "PTS": "20", "FGM": "8", "FGA": "15"},
			{"Game": "g2", "Date": "2024-01-17", "PTS": "12", "FGM": "4", "FGA": "7", "Phase": "Playoffs"},
		},
		"hawks": {
			{"Game": "g1", "Date": "2024-01-10", "Result": "W", "PTS": "70"},
			{"Game": "g2", "Date": "2024-01-17", "Result": "L", "PTS": "61"},
		},
	})
	rosterRepo := memory.NewRosterRepository(
		[]roster.Team{{ID: "hawks", Name: "Hawks", Roster: []string{"ana", "ben"}}},
		[]roster.Player{{ID: "ana", Name: "Ana"}, {ID: "ben", Name: "Ben"}},
	)

	cfg := config.Config{
		CORSAllowedOrigins: []string{"*"},
		SourceWorkers:      2,
		InternalJobToken:   testToken,
	}
	comps := &components{
		rows:    rows,
		writer:  rows,
		roster:  rosterRepo,
		lines:   cache.NewStore[[]boxscore.GameStatLine](time.Minute),
		metrics: observability.NewMetrics(metricsNamespace),
	}

	router, err := newRouter(cfg, logging.NewNop(), config.DefaultSchema(), comps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func getData(t *testing.T, router http.Handler, path string) map[string]any {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status=%d body=%s", path, rec.Code, rec.Body.String())
	}

	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return body.Data
}

func leaderIDs(t *testing.T, data map[string]any) []string {
	t.Helper()

	rows, _ := data["rows"].([]any)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		item, _ := row.(map[string]any)
		player, _ := item["player"].(map[string]any)
		id, _ := player["id"].(string)
		ids = append(ids, id)
	}
	return ids
}

func TestRouter_MemoryStackEndToEnd(t *testing.T) {
	t.Parallel()

	router := newMemoryRouter(t)

	averages := getData(t, router, "/v1/players/ana/averages")
	line, _ := averages["line"].(map[string]any)
	if line["games_played"] != float64(2) {
		t.Fatalf("unexpected games played: %v", line["games_played"])
	}
	perGame, _ := line["per_game"].(map[string]any)
	if perGame["points"] != float64(16) {
		t.Fatalf("unexpected points per game: %v", perGame["points"])
	}

	playoffs := getData(t, router, "/v1/players/ana/averages?phase=playoffs")
	line, _ = playoffs["line"].(map[string]any)
	if line["games_played"] != float64(1) {
		t.Fatalf("unexpected playoff games: %v", line["games_played"])
	}

	games := getData(t, router, "/v1/teams/hawks/games")
	if games["wins"] != float64(1) || games["losses"] != float64(1) {
		t.Fatalf("unexpected team tally: %v", games)
	}

	leaders := getData(t, router, "/v1/teams/hawks/leaders")
	if ids := leaderIDs(t, leaders); len(ids) != 1 || ids[0] != "ana" {
		t.Fatalf("expected only ana on the board before ingestion, got %v", ids)
	}
}

func TestRouter_IngestionRefreshesLeaders(t *testing.T) {
	t.Parallel()

	router := newMemoryRouter(t)
	_ = getData(t, router, "/v1/teams/hawks/leaders")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/rows/ben",
		strings.NewReader(`{"rows":[{"Game":"g1","Date":"2024-01-10","PTS":"30"}]}`))
	req.Header.Set("X-Internal-Job-Token", testToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest status=%d body=%s", rec.Code, rec.Body.String())
	}

	leaders := getData(t, router, "/v1/teams/hawks/leaders?sort=pts")
	if ids := leaderIDs(t, leaders); len(ids) != 2 || ids[0] != "ben" || ids[1] != "ana" {
		t.Fatalf("expected ben then ana after ingestion, got %v", ids)
	}
}

func TestRouter_ExposesMetrics(t *testing.T) {
	t.Parallel()

	router := newMemoryRouter(t)
	_ = getData(t, router, "/v1/players/ana/averages")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "mystats_line_cache_lookups_total") {
		t.Fatalf("expected cache lookup counter in metrics output")
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, _, err := NewHTTPServer(context.Background(), config.Config{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNewHTTPServer_FileSource(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		HTTPAddr:      ":0",
		SourceKind:    config.SourceFile,
		SourceWorkers: 1,
		DataDir:       t.TempDir(),
		RosterDir:     t.TempDir(),
		CacheBackend:  config.CacheMemory,
		CacheTTL:      time.Minute,
	}
	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
