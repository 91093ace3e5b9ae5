package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/platform/resilience"
)

func TestSource_ListRows(t *testing.T) {
	t.Parallel()

	queries := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		_, _ = w.Write([]byte("DATE,PTS\n2024-01-10,12\n"))
	}))
	defer server.Close()

	source := NewSource(Config{
		PlayerURL:  server.URL + "/pub",
		PlayerGIDs: map[string]int64{"ana": 0},
	})

	rows, err := source.ListRows(context.Background(), "ana")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 || rows[0]["PTS"] != "12" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if gotQuery := <-queries; gotQuery != "gid=0&output=csv&single=true" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
}

func TestSource_UnknownEntity(t *testing.T) {
	t.Parallel()

	source := NewSource(Config{PlayerURL: "http://example.invalid/pub", PlayerGIDs: map[string]int64{"ana": 1}})
	if _, err := source.ListRows(context.Background(), "ben"); !errors.Is(err, boxscore.ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestSource_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("pts\n4\n"))
	}))
	defer server.Close()

	source := NewSource(Config{
		TeamURL:      server.URL,
		TeamGIDs:     map[string]int64{"hawks": 7},
		MaxRetries:   1,
		RetryBackoff: time.Millisecond,
	})

	rows, err := source.ListRows(context.Background(), "hawks")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if calls.Load() != 2 || len(rows) != 1 {
		t.Fatalf("unexpected retry outcome: calls=%d rows=%d", calls.Load(), len(rows))
	}
}

func TestSource_CircuitOpensOnRepeatedFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := NewSource(Config{
		PlayerURL:  server.URL,
		PlayerGIDs: map[string]int64{"ana": 1},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := source.ListRows(context.Background(), "ana"); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}
	_, err := source.ListRows(context.Background(), "ana")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("open circuit must not reach upstream, calls=%d", calls.Load())
	}
	if source.Breaker().State() != resilience.CircuitStateOpen {
		t.Fatalf("unexpected breaker state: %s", source.Breaker().State())
	}
}

func TestSource_NotFoundIsNotCircuitFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := NewSource(Config{
		PlayerURL:      server.URL,
		PlayerGIDs:     map[string]int64{"ana": 1},
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	})
	if _, err := source.ListRows(context.Background(), "ana"); err == nil {
		t.Fatalf("expected error for 404")
	}
	if source.Breaker().State() != resilience.CircuitStateClosed {
		t.Fatalf("404 must not trip the circuit, state=%s", source.Breaker().State())
	}
}

func TestSource_RejectsOversizedSheet(t *testing.T) {
	t.Parallel()

	body := "date,pts,note\n" + strings.Repeat("2024-01-10,12,steady\n", 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	source := NewSource(Config{
		PlayerURL:      server.URL,
		PlayerGIDs:     map[string]int64{"ana": 1},
		MaxBytes:       int64(len(body) - 5),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	})

	rows, err := source.ListRows(context.Background(), "ana")
	if !crerr.Is(err, errSheetTooLarge) {
		t.Fatalf("expected errSheetTooLarge, got rows=%d err=%v", len(rows), err)
	}
	if source.Breaker().State() != resilience.CircuitStateClosed {
		t.Fatalf("oversized sheet must not trip the circuit, state=%s", source.Breaker().State())
	}

	exact := NewSource(Config{
		PlayerURL:  server.URL,
		PlayerGIDs: map[string]int64{"ana": 1},
		MaxBytes:   int64(len(body)),
	})
	rows, err = exact.ListRows(context.Background(), "ana")
	if err != nil {
		t.Fatalf("sheet at the limit must load: %v", err)
	}
	if len(rows) != 64 || rows[63]["pts"] != "12" {
		t.Fatalf("unexpected rows at the limit: %d", len(rows))
	}
}

func TestSource_SharedFetchSurvivesCallerCancel(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		_, _ = w.Write([]byte("pts\n9\n"))
	}))
	defer server.Close()

	source := NewSource(Config{
		PlayerURL:  server.URL,
		PlayerGIDs: map[string]int64{"ana": 1},
		Timeout:    5 * time.Second,
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := source.ListRows(firstCtx, "ana")
		firstErr <- err
	}()

	<-started
	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to stop waiting, got %v", err)
	}

	type result struct {
		rows []boxscore.RawRow
		err  error
	}
	second := make(chan result, 1)
	go func() {
		rows, err := source.ListRows(context.Background(), "ana")
		second <- result{rows: rows, err: err}
	}()
	close(release)

	got := <-second
	if got.err != nil {
		t.Fatalf("joined caller must not inherit the cancellation: %v", got.err)
	}
	if len(got.rows) != 1 || got.rows[0]["pts"] != "9" {
		t.Fatalf("unexpected rows: %+v", got.rows)
	}
}
