package usecase

import "time"

// StatsMetrics receives report pipeline measurements.
type StatsMetrics interface {
	ObserveCacheLookup(hit bool)
	ObserveSourceFetch(outcome string, elapsed time.Duration)
	ObserveDefaultedCells(count int)
}

const (
	FetchOutcomeOK      = "ok"
	FetchOutcomeUnknown = "unknown_entity"
	FetchOutcomeError   = "error"
)

type nopStatsMetrics struct{}

func (nopStatsMetrics) ObserveCacheLookup(bool)                  {}
func (nopStatsMetrics) ObserveSourceFetch(string, time.Duration) {}
func (nopStatsMetrics) ObserveDefaultedCells(int)                {}
