package leaderboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/mystats/internal/domain/aggregate"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey is the statistic a leaderboard is ordered by.
type SortKey string

const (
	SortPoints      SortKey = "pts"
	SortRebounds    SortKey = "reb"
	SortOffRebounds SortKey = "oreb"
	SortDefRebounds SortKey = "dreb"
	SortAssists     SortKey = "ast"
	SortSteals      SortKey = "stl"
	SortBlocks      SortKey = "blk"
	SortTurnovers   SortKey = "tov"
	SortMinutes     SortKey = "min"
	SortGames       SortKey = "gp"
	SortFGPct       SortKey = "fg_pct"
	SortThreePct    SortKey = "3p_pct"
	SortFTPct       SortKey = "ft_pct"

	DefaultSortKey = SortPoints
)

var countingStats = map[SortKey]boxscore.Stat{
	SortPoints:      boxscore.StatPoints,
	SortRebounds:    boxscore.StatRebounds,
	SortOffRebounds: boxscore.StatOffRebounds,
	SortDefRebounds: boxscore.StatDefRebounds,
	SortAssists:     boxscore.StatAssists,
	SortSteals:      boxscore.StatSteals,
	SortBlocks:      boxscore.StatBlocks,
	SortTurnovers:   boxscore.StatTurnovers,
	SortMinutes:     boxscore.StatMinutes,
}

// SortKeys lists every supported key.
func SortKeys() []SortKey {
	return []SortKey{
		SortPoints, SortRebounds, SortOffRebounds, SortDefRebounds, SortAssists, SortSteals,
		SortBlocks, SortTurnovers, SortMinutes, SortGames, SortFGPct, SortThreePct, SortFTPct,
	}
}

// ParseSortKey accepts any key from SortKeys; empty input selects points.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if key == "" {
		return DefaultSortKey, nil
	}
	for _, known := range SortKeys() {
		if key == known {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSortKey, raw)
}

// Mode selects between per-game and summed values for counting stats.
type Mode string

const (
	ModeAverages Mode = "averages"
	ModeTotals   Mode = "totals"
)

// Entry is one ranked row. Valid is false only for percentage keys
// without attempts.
type Entry struct {
	Rank     int
	EntityID string
	Line     aggregate.Line
	Value    float64
	Valid    bool
}

// Build ranks lines by the per-game value of key, highest first.
func Build(lines []aggregate.Line, key SortKey) []Entry {
	return BuildMode(lines, key, ModeAverages)
}

// BuildMode ranks lines by key. Ties keep their input order and entries
// without a valid value rank below every valid one.
func BuildMode(lines []aggregate.Line, key SortKey, mode Mode) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		value, valid := valueOf(line, key, mode)
		entries = append(entries, Entry{EntityID: line.EntityID, Line: line, Value: value, Valid: valid})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Value > b.Value
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func valueOf(line aggregate.Line, key SortKey, mode Mode) (float64, bool) {
	switch key {
	case SortGames:
		return float64(line.GamesPlayed), true
	case SortFGPct:
		pct := line.FG.Percentage()
		return pct.Value, pct.Valid
	case SortThreePct:
		pct := line.ThreePoint.Percentage()
		return pct.Value, pct.Valid
	case SortFTPct:
		pct := line.FreeThrow.Percentage()
		return pct.Value, pct.Valid
	}

	stat, ok := countingStats[key]
	if !ok {
		stat = countingStats[DefaultSortKey]
	}
	if mode == ModeTotals {
		return line.Total(stat), true
	}
	return line.Average(stat), true
}
