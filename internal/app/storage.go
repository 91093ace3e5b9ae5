package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/mystats/internal/config"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/roster"
	cachedrepo "github.com/riskibarqy/mystats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/mystats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/mystats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/mystats/internal/infrastructure/source/file"
	"github.com/riskibarqy/mystats/internal/infrastructure/source/sheets"
	"github.com/riskibarqy/mystats/internal/platform/cache"
	"github.com/riskibarqy/mystats/internal/platform/logging"
	"github.com/riskibarqy/mystats/internal/platform/resilience"
)

const (
	sheetsUpstream     = "google_sheets"
	redisLineNamespace = "mystats"
)

func buildStorage(ctx context.Context, cfg config.Config, logger *logging.Logger, comps *components) error {
	switch cfg.SourceKind {
	case config.SourcePostgres:
		db, err := OpenDB(cfg)
		if err != nil {
			return err
		}
		comps.closers = append(comps.closers, db.Close)

		rows := postgres.NewBoxScoreRepository(db)
		comps.rows = rows
		comps.writer = rows
		comps.roster = cachedrepo.NewRosterRepository(
			postgres.NewRosterRepository(db),
			cache.NewStore[[]roster.Team](cfg.CacheTTL),
			cache.NewStore[[]roster.Player](cfg.CacheTTL),
		)
		logger.Info("row source ready", "kind", cfg.SourceKind, "db", dbNameFromURL(cfg.DBURL))
	case config.SourceSheets:
		source := sheets.NewSource(sheets.Config{
			HTTPClient: &http.Client{Timeout: cfg.SheetsTimeout},
			PlayerURL:  cfg.SheetsPlayerURL,
			TeamURL:    cfg.SheetsTeamURL,
			PlayerGIDs: cfg.SheetsPlayerGIDs,
			TeamGIDs:   cfg.SheetsTeamGIDs,
			Timeout:    cfg.SheetsTimeout,
			MaxRetries: cfg.SheetsMaxRetries,
			Logger:     logger.Named("sheets"),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SheetsCircuitEnabled,
				FailureThreshold: cfg.SheetsCircuitFailureCount,
				OpenTimeout:      cfg.SheetsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SheetsCircuitHalfOpenMaxReq,
			},
		})
		if comps.metrics != nil {
			comps.metrics.TrackBreaker(sheetsUpstream, source.Breaker())
		}
		comps.rows = source
		logger.Info("row source ready", "kind", cfg.SourceKind, "entities", len(source.Entities()))
	default:
		comps.rows = file.NewSource(cfg.DataDir)
		logger.Info("row source ready", "kind", cfg.SourceKind, "dir", cfg.DataDir)
	}

	if comps.roster == nil {
		teams, players, err := memory.LoadRosterDir(cfg.RosterDir)
		if err != nil {
			return fmt.Errorf("load roster dir %s: %w", cfg.RosterDir, err)
		}
		comps.roster = memory.NewRosterRepository(teams, players)
		logger.Info("roster loaded", "dir", cfg.RosterDir, "teams", len(teams), "players", len(players))
	}

	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		comps.closers = append(comps.closers, client.Close)
		comps.lines = cache.NewRedisStore[[]boxscore.GameStatLine](client, redisLineNamespace, cfg.CacheTTL, logger.Named("cache"))
	default:
		comps.lines = cache.NewStore[[]boxscore.GameStatLine](cfg.CacheTTL)
	}
	return nil
}
