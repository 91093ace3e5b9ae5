package records

import "github.com/riskibarqy/mystats/internal/domain/boxscore"

// Definition is one tracked single-game record.
type Definition struct {
	Stat  boxscore.Stat
	Label string
}

// Definitions returns the tracked records in display order.
func Definitions() []Definition {
	return []Definition{
		{Stat: boxscore.StatPoints, Label: "Points"},
		{Stat: boxscore.StatRebounds, Label: "Rebounds"},
		{Stat: boxscore.StatOffRebounds, Label: "Offensive Rebounds"},
		{Stat: boxscore.StatDefRebounds, Label: "Defensive Rebounds"},
		{Stat: boxscore.StatAssists, Label: "Assists"},
		{Stat: boxscore.StatSteals, Label: "Steals"},
		{Stat: boxscore.StatBlocks, Label: "Blocks"},
		{Stat: boxscore.StatThreesMade, Label: "3PT Made"},
		{Stat: boxscore.StatFGMade, Label: "FG Made"},
		{Stat: boxscore.StatFTMade, Label: "FT Made"},
		{Stat: boxscore.StatTurnovers, Label: "Turnovers"},
	}
}

// Line is a game line attributed to the player who owns the record.
type Line struct {
	OwnerID string
	Stat    boxscore.GameStatLine
}

// Entry is the single-game best for one stat.
type Entry struct {
	StatKey  boxscore.Stat
	Label    string
	Value    float64
	OwnerID  string
	GameID   string
	Date     string
	Opponent string
}

// Set holds at most one entry per tracked stat.
type Set map[boxscore.Stat]Entry

// Ordered returns the entries present in the set in definition order.
func (s Set) Ordered() []Entry {
	out := make([]Entry, 0, len(s))
	for _, def := range Definitions() {
		if entry, ok := s[def.Stat]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Find scans lines in order and keeps, per stat, the first line holding
// the maximum value. An empty input yields an empty set.
func Find(lines []Line) Set {
	defs := Definitions()
	set := make(Set, len(defs))
	for _, line := range lines {
		for _, def := range defs {
			value := line.Stat.Value(def.Stat)
			current, exists := set[def.Stat]
			if exists && value <= current.Value {
				continue
			}
			set[def.Stat] = Entry{
				StatKey:  def.Stat,
				Label:    def.Label,
				Value:    value,
				OwnerID:  line.OwnerID,
				GameID:   line.Stat.GameID,
				Date:     line.Stat.Date,
				Opponent: line.Stat.Opponent,
			}
		}
	}
	return set
}
