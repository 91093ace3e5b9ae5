// Package sheets reads box-score rows from published Google Sheets tabs.
package sheets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/infrastructure/source/tabular"
	"github.com/riskibarqy/mystats/internal/platform/logging"
	"github.com/riskibarqy/mystats/internal/platform/resilience"
)

const defaultMaxSheetBytes = 8 << 20

var (
	errSheetTransient = crerr.New("sheet transient failure")
	errSheetTooLarge  = crerr.New("sheet too large")
)

type Config struct {
	HTTPClient     *http.Client
	PlayerURL      string
	TeamURL        string
	PlayerGIDs     map[string]int64
	TeamGIDs       map[string]int64
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	MaxBytes       int64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Source maps an entity slug to one published tab: players live in one
// spreadsheet, teams in another.
type Source struct {
	httpClient *http.Client
	playerURL  string
	teamURL    string
	playerGIDs map[string]int64
	teamGIDs   map[string]int64
	maxRetries int
	backoff    time.Duration
	maxBytes   int64
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewSource(cfg Config) *Source {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxSheetBytes
	}

	return &Source{
		httpClient: httpClient,
		playerURL:  strings.TrimSpace(cfg.PlayerURL),
		teamURL:    strings.TrimSpace(cfg.TeamURL),
		playerGIDs: cfg.PlayerGIDs,
		teamGIDs:   cfg.TeamGIDs,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		maxBytes:   maxBytes,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// Breaker exposes the upstream circuit for state reporting. It is nil when
// the circuit is disabled.
func (s *Source) Breaker() *resilience.CircuitBreaker {
	return s.breaker
}

// Entities lists every configured slug, players first.
func (s *Source) Entities() []string {
	out := make([]string, 0, len(s.playerGIDs)+len(s.teamGIDs))
	for slug := range s.playerGIDs {
		out = append(out, slug)
	}
	for slug := range s.teamGIDs {
		if _, dup := s.playerGIDs[slug]; !dup {
			out = append(out, slug)
		}
	}
	return out
}

func (s *Source) ListRows(ctx context.Context, entityID string) ([]boxscore.RawRow, error) {
	tabURL, ok := s.tabURL(strings.TrimSpace(entityID))
	if !ok {
		return nil, boxscore.ErrUnknownEntity
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	shared := s.flight.DoChan(tabURL, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchBudget())
		defer cancel()

		var raw []byte
		err := s.breaker.Do(func() error {
			var fetchErr error
			raw, fetchErr = s.fetch(fetchCtx, tabURL)
			return fetchErr
		}, isCircuitFailure)
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			s.logger.WarnContext(fetchCtx, "sheets circuit breaker rejected request", "entity_id", entityID, "state", s.breaker.State())
		}
		return raw, err
	})

	var out any
	select {
	case <-ctx.Done():
		return nil, crerr.Wrapf(ctx.Err(), "fetch sheet entity=%s", entityID)
	case res := <-shared:
		if res.Err != nil {
			return nil, crerr.Wrapf(res.Err, "fetch sheet entity=%s", entityID)
		}
		out = res.Val
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected sheet payload type %T", out)
	}
	rows, err := tabular.DecodeCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrapf(err, "decode sheet entity=%s", entityID)
	}
	return rows, nil
}

func (s *Source) tabURL(entityID string) (string, bool) {
	if gid, ok := s.playerGIDs[entityID]; ok && s.playerURL != "" {
		return publishedCSVURL(s.playerURL, gid), true
	}
	if gid, ok := s.teamGIDs[entityID]; ok && s.teamURL != "" {
		return publishedCSVURL(s.teamURL, gid), true
	}
	return "", false
}

// publishedCSVURL points a "publish to web" spreadsheet URL at one tab.
func publishedCSVURL(base string, gid int64) string {
	parsed, err := url.Parse(base)
	if err != nil {
		return base
	}
	values := parsed.Query()
	values.Set("gid", strconv.FormatInt(gid, 10))
	values.Set("single", "true")
	values.Set("output", "csv")
	parsed.RawQuery = values.Encode()
	return parsed.String()
}

// fetchBudget covers every attempt plus the backoff waits between them.
func (s *Source) fetchBudget() time.Duration {
	attempts := time.Duration(s.maxRetries + 1)
	waits := time.Duration(s.maxRetries*(s.maxRetries+1)/2) * s.backoff
	return attempts*s.httpClient.Timeout + waits
}

func (s *Source) fetch(ctx context.Context, tabURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, tabURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "text/csv")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errSheetTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errSheetTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				if int64(len(raw)) > s.maxBytes {
					return nil, crerr.Mark(crerr.Newf("sheet exceeds %d bytes", s.maxBytes), errSheetTooLarge)
				}
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("sheet status=%d", resp.StatusCode), errSheetTransient)
			default:
				return nil, crerr.Newf("sheet status=%d", resp.StatusCode)
			}
		}

		if attempt == s.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * s.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.logger.WarnContext(ctx, "sheet request failed", "url", tabURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errSheetTransient)
}
