package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/riskibarqy/mystats/internal/platform/resilience"
)

func TestMetrics_Observations(t *testing.T) {
	t.Parallel()

	m := NewMetrics("mystats")
	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveCacheLookup(false)
	m.ObserveDefaultedCells(3)
	m.ObserveDefaultedCells(0)
	m.ObserveSourceFetch("ok", 20*time.Millisecond)

	if got := testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("unexpected miss count: %v", got)
	}
	if got := testutil.ToFloat64(m.defaultedCells); got != 3 {
		t.Fatalf("unexpected defaulted cells: %v", got)
	}
	if got := testutil.CollectAndCount(m.sourceFetches); got != 1 {
		t.Fatalf("unexpected fetch series count: %d", got)
	}
}

func TestMetrics_TrackBreaker(t *testing.T) {
	t.Parallel()

	m := NewMetrics("mystats")
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	m.TrackBreaker("sheets", breaker)

	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("sheets", "closed")); got != 1 {
		t.Fatalf("expected closed state reported, got %v", got)
	}

	breaker.RecordFailure()
	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("sheets", "open")); got != 1 {
		t.Fatalf("expected open state reported, got %v", got)
	}
	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("sheets", "closed")); got != 0 {
		t.Fatalf("expected closed state cleared, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := NewMetrics("mystats")
	m.ObserveCacheLookup(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `mystats_line_cache_lookups_total{result="hit"} 1`) {
		t.Fatalf("metrics output missing cache counter:\n%s", body)
	}
}
