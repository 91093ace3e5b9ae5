package boxscore

import "strings"

// RawRow is one source row keyed by the source's own header names.
type RawRow map[string]string

// Phase separates regular-season games from playoff games.
type Phase string

const (
	PhaseRegular  Phase = "regular"
	PhasePlayoffs Phase = "playoffs"
)

var playoffAliases = map[string]struct{}{
	"playoffs":   {},
	"playoff":    {},
	"finals":     {},
	"final":      {},
	"post":       {},
	"postseason": {},
}

// ParsePhase maps a free-text phase cell onto a Phase. Anything that is not
// a playoff alias is a regular-season game.
func ParsePhase(raw string) Phase {
	if _, ok := playoffAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return PhasePlayoffs
	}
	return PhaseRegular
}

// Shooting is a made/attempted pair for one game.
type Shooting struct {
	Made      float64 `json:"made"`
	Attempted float64 `json:"attempted"`
}

// GameStatLine is one entity's canonical box score for one game.
type GameStatLine struct {
	EntityID    string `json:"entity_id"`
	GameID      string `json:"game_id"`
	Date        string `json:"date"`
	Opponent    string `json:"opponent"`
	Result      string `json:"result"`
	SeasonLabel string `json:"season_label"`
	Year        int    `json:"year"`
	Phase       Phase  `json:"phase"`

	Minutes       float64 `json:"minutes"`
	Points        float64 `json:"points"`
	ReboundsTotal float64 `json:"rebounds_total"`
	ReboundsOff   float64 `json:"rebounds_off"`
	ReboundsDef   float64 `json:"rebounds_def"`
	Assists       float64 `json:"assists"`
	Steals        float64 `json:"steals"`
	Blocks        float64 `json:"blocks"`
	Turnovers     float64 `json:"turnovers"`
	Fouls         float64 `json:"fouls"`

	FieldGoals    Shooting `json:"field_goals"`
	ThreePointers Shooting `json:"three_pointers"`
	FreeThrows    Shooting `json:"free_throws"`

	ScoreFor     float64 `json:"score_for"`
	ScoreAgainst float64 `json:"score_against"`
}

// Stat identifies a single numeric value of a GameStatLine.
type Stat string

const (
	StatMinutes        Stat = "min"
	StatPoints         Stat = "pts"
	StatRebounds       Stat = "reb"
	StatOffRebounds    Stat = "oreb"
	StatDefRebounds    Stat = "dreb"
	StatAssists        Stat = "ast"
	StatSteals         Stat = "stl"
	StatBlocks         Stat = "blk"
	StatTurnovers      Stat = "tov"
	StatFouls          Stat = "pf"
	StatFGMade         Stat = "fgm"
	StatFGAttempted    Stat = "fga"
	StatThreesMade     Stat = "3pm"
	StatThreesAttempts Stat = "3pa"
	StatFTMade         Stat = "ftm"
	StatFTAttempted    Stat = "fta"
)

// Value returns the line's value for stat, 0 for unknown stats.
func (l GameStatLine) Value(stat Stat) float64 {
	switch stat {
	case StatMinutes:
		return l.Minutes
	case StatPoints:
		return l.Points
	case StatRebounds:
		return l.ReboundsTotal
	case StatOffRebounds:
		return l.ReboundsOff
	case StatDefRebounds:
		return l.ReboundsDef
	case StatAssists:
		return l.Assists
	case StatSteals:
		return l.Steals
	case StatBlocks:
		return l.Blocks
	case StatTurnovers:
		return l.Turnovers
	case StatFouls:
		return l.Fouls
	case StatFGMade:
		return l.FieldGoals.Made
	case StatFGAttempted:
		return l.FieldGoals.Attempted
	case StatThreesMade:
		return l.ThreePointers.Made
	case StatThreesAttempts:
		return l.ThreePointers.Attempted
	case StatFTMade:
		return l.FreeThrows.Made
	case StatFTAttempted:
		return l.FreeThrows.Attempted
	default:
		return 0
	}
}
