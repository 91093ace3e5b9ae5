package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/mystats/internal/config"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/roster"
	"github.com/riskibarqy/mystats/internal/domain/season"
	"github.com/riskibarqy/mystats/internal/interfaces/httpapi"
	"github.com/riskibarqy/mystats/internal/observability"
	"github.com/riskibarqy/mystats/internal/platform/cache"
	idgen "github.com/riskibarqy/mystats/internal/platform/id"
	"github.com/riskibarqy/mystats/internal/platform/logging"
	"github.com/riskibarqy/mystats/internal/usecase"
)

const metricsNamespace = "mystats"

// components are the storage-facing pieces picked from config.
type components struct {
	rows    boxscore.RowSource
	writer  boxscore.RowWriter
	roster  roster.Repository
	lines   cache.Cache[[]boxscore.GameStatLine]
	metrics *observability.Metrics
	closers []func() error
}

func (c *components) close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewHTTPServer wires the configured row source, roster and cache into the
// HTTP API. The returned cleanup releases database and redis connections.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	schema, err := config.LoadSchema(cfg.SchemaFile)
	if err != nil {
		return nil, nil, err
	}

	comps := &components{}
	if cfg.MetricsEnabled {
		comps.metrics = observability.NewMetrics(metricsNamespace)
	}
	if err := buildStorage(ctx, cfg, logger, comps); err != nil {
		_ = comps.close()
		return nil, nil, err
	}

	router, err := newRouter(cfg, logger, schema, comps)
	if err != nil {
		_ = comps.close()
		return nil, nil, err
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, comps.close, nil
}

func newRouter(cfg config.Config, logger *logging.Logger, schema config.Schema, comps *components) (http.Handler, error) {
	classifier, err := season.NewClassifier(schema.Seasons)
	if err != nil {
		return nil, fmt.Errorf("build season classifier: %w", err)
	}
	normalizer := boxscore.NewNormalizer(schema.Columns, classifier)

	opts := usecase.StatsServiceOptions{
		Workers: cfg.SourceWorkers,
		Logger:  logger.Named("stats"),
	}
	var metricsHandler http.Handler
	if comps.metrics != nil {
		opts.Metrics = comps.metrics
		metricsHandler = comps.metrics.Handler()
	}

	statsSvc := usecase.NewStatsService(comps.rows, comps.roster, normalizer, classifier, comps.lines, opts)

	// Without a writer the internal rows route answers 503.
	var ingestion httpapi.RowIngester
	if comps.writer != nil {
		ingestion = usecase.NewIngestionService(comps.writer, statsSvc)
	}

	handler := httpapi.NewHandler(statsSvc, ingestion, logger.Named("httpapi"))
	return httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		MetricsHandler:     metricsHandler,
		RequestIDGenerator: idgen.NewRequestIDGenerator(),
	}), nil
}
