package aggregate

import (
	"math"
	"strconv"

	"github.com/riskibarqy/mystats/internal/domain/boxscore"
)

// Percentage is a shooting percentage in the 0..100 range. Valid is false
// when there were no attempts, which is distinct from a 0% line.
type Percentage struct {
	Value float64
	Valid bool
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (p Percentage) Rounded() float64 {
	return Round1(p.Value)
}

func (p Percentage) String() string {
	if !p.Valid {
		return "—"
	}
	return strconv.FormatFloat(p.Rounded(), 'f', 1, 64)
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, p.Rounded(), 'f', 1, 64), nil
}

// Shooting is a summed made/attempted pair.
type Shooting struct {
	Made      float64 `json:"made"`
	Attempted float64 `json:"attempted"`
}

// Percentage is made over attempted of the summed totals.
func (s Shooting) Percentage() Percentage {
	if s.Attempted == 0 {
		return Percentage{}
	}
	return Percentage{Value: 100 * s.Made / s.Attempted, Valid: true}
}

// Totals holds the counting stats of a set of games.
type Totals struct {
	Minutes     float64 `json:"minutes"`
	Points      float64 `json:"points"`
	Rebounds    float64 `json:"rebounds"`
	OffRebounds float64 `json:"off_rebounds"`
	DefRebounds float64 `json:"def_rebounds"`
	Assists     float64 `json:"assists"`
	Steals      float64 `json:"steals"`
	Blocks      float64 `json:"blocks"`
	Turnovers   float64 `json:"turnovers"`
	Fouls       float64 `json:"fouls"`
}

func (t Totals) divide(n float64) Totals {
	return Totals{
		Minutes:     t.Minutes / n,
		Points:      t.Points / n,
		Rebounds:    t.Rebounds / n,
		OffRebounds: t.OffRebounds / n,
		DefRebounds: t.DefRebounds / n,
		Assists:     t.Assists / n,
		Steals:      t.Steals / n,
		Blocks:      t.Blocks / n,
		Turnovers:   t.Turnovers / n,
		Fouls:       t.Fouls / n,
	}
}

// Line is the aggregate of one entity over a filtered set of games.
type Line struct {
	EntityID    string
	GamesPlayed int
	Totals      Totals
	FG          Shooting
	ThreePoint  Shooting
	FreeThrow   Shooting
}

// PerGame divides every counting total by games played. It is all zeros
// when no games were played.
func (l Line) PerGame() Totals {
	if l.GamesPlayed == 0 {
		return Totals{}
	}
	return l.Totals.divide(float64(l.GamesPlayed))
}

// Total returns the summed value of stat.
func (l Line) Total(stat boxscore.Stat) float64 {
	switch stat {
	case boxscore.StatMinutes:
		return l.Totals.Minutes
	case boxscore.StatPoints:
		return l.Totals.Points
	case boxscore.StatRebounds:
		return l.Totals.Rebounds
	case boxscore.StatOffRebounds:
		return l.Totals.OffRebounds
	case boxscore.StatDefRebounds:
		return l.Totals.DefRebounds
	case boxscore.StatAssists:
		return l.Totals.Assists
	case boxscore.StatSteals:
		return l.Totals.Steals
	case boxscore.StatBlocks:
		return l.Totals.Blocks
	case boxscore.StatTurnovers:
		return l.Totals.Turnovers
	case boxscore.StatFouls:
		return l.Totals.Fouls
	case boxscore.StatFGMade:
		return l.FG.Made
	case boxscore.StatFGAttempted:
		return l.FG.Attempted
	case boxscore.StatThreesMade:
		return l.ThreePoint.Made
	case boxscore.StatThreesAttempts:
		return l.ThreePoint.Attempted
	case boxscore.StatFTMade:
		return l.FreeThrow.Made
	case boxscore.StatFTAttempted:
		return l.FreeThrow.Attempted
	default:
		return 0
	}
}

// Average is Total(stat) per game played, 0 when no games were played.
func (l Line) Average(stat boxscore.Stat) float64 {
	if l.GamesPlayed == 0 {
		return 0
	}
	return l.Total(stat) / float64(l.GamesPlayed)
}
