package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/mystats/internal/platform/resilience"
	"github.com/riskibarqy/mystats/internal/usecase"
)

var _ usecase.StatsMetrics = (*Metrics)(nil)

var circuitStates = []resilience.CircuitState{
	resilience.CircuitStateClosed,
	resilience.CircuitStateOpen,
	resilience.CircuitStateHalfOpen,
}

// Metrics is the Prometheus side of the stats pipeline. It owns a private
// registry so tests can build as many as they like.
type Metrics struct {
	registry       *prometheus.Registry
	cacheLookups   *prometheus.CounterVec
	sourceFetches  *prometheus.HistogramVec
	defaultedCells prometheus.Counter
	circuitState   *prometheus.GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_cache_lookups_total",
			Help:      "Normalized line cache lookups by result.",
		}, []string{"result"}),
		sourceFetches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "row_source_fetch_seconds",
			Help:      "Row source fetch latency by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		defaultedCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalizer_defaulted_cells_total",
			Help:      "Numeric cells that were missing or unreadable and decoded as zero.",
		}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "upstream_circuit_state",
			Help:      "1 for the current circuit breaker state of an upstream.",
		}, []string{"upstream", "state"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cacheLookups,
		m.sourceFetches,
		m.defaultedCells,
		m.circuitState,
	)
	return m
}

func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSourceFetch(outcome string, elapsed time.Duration) {
	m.sourceFetches.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveDefaultedCells(count int) {
	if count > 0 {
		m.defaultedCells.Add(float64(count))
	}
}

func (m *Metrics) ObserveCircuitState(upstream string, state resilience.CircuitState) {
	for _, s := range circuitStates {
		value := 0.0
		if s == state {
			value = 1
		}
		m.circuitState.WithLabelValues(upstream, string(s)).Set(value)
	}
}

// TrackBreaker reports every transition of b. A nil breaker is reported
// as permanently closed.
func (m *Metrics) TrackBreaker(upstream string, b *resilience.CircuitBreaker) {
	m.ObserveCircuitState(upstream, b.State())
	b.OnStateChange(func(_, to resilience.CircuitState) {
		m.ObserveCircuitState(upstream, to)
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
