package boxscore

import (
	"math"
	"strconv"
	"strings"
)

// Field is a canonical box-score field.
type Field string

const (
	FieldGameID         Field = "game_id"
	FieldDate           Field = "date"
	FieldOpponent       Field = "opponent"
	FieldResult         Field = "result"
	FieldSeason         Field = "season"
	FieldPhase          Field = "phase"
	FieldMinutes        Field = "minutes"
	FieldPoints         Field = "points"
	FieldReboundsTotal  Field = "rebounds_total"
	FieldReboundsOff    Field = "rebounds_off"
	FieldReboundsDef    Field = "rebounds_def"
	FieldAssists        Field = "assists"
	FieldSteals         Field = "steals"
	FieldBlocks         Field = "blocks"
	FieldTurnovers      Field = "turnovers"
	FieldFouls          Field = "fouls"
	FieldFGMade         Field = "fg_made"
	FieldFGAttempted    Field = "fg_attempted"
	FieldThreesMade     Field = "threes_made"
	FieldThreesAttempts Field = "threes_attempted"
	FieldFTMade         Field = "ft_made"
	FieldFTAttempted    Field = "ft_attempted"
	FieldScoreFor       Field = "score_for"
	FieldScoreAgainst   Field = "score_against"
)

var defaultSynonyms = map[Field][]string{
	FieldGameID:         {"game_id", "gameid", "game"},
	FieldDate:           {"date", "game_date"},
	FieldOpponent:       {"opponent", "opp", "vs"},
	FieldResult:         {"result", "res", "wl"},
	FieldSeason:         {"season", "season_label"},
	FieldPhase:          {"phase", "stage"},
	FieldMinutes:        {"min", "mins", "minutes", "mp"},
	FieldPoints:         {"pts", "points"},
	FieldReboundsTotal:  {"totrb", "trb", "reb", "tot_reb"},
	FieldReboundsOff:    {"or", "oreb", "orb"},
	FieldReboundsDef:    {"dr", "dreb", "drb"},
	FieldAssists:        {"ass", "ast", "assists"},
	FieldSteals:         {"st", "stl", "steals"},
	FieldBlocks:         {"bs", "blk", "blocks"},
	FieldTurnovers:      {"to", "tov", "turnovers"},
	FieldFouls:          {"pf", "fouls"},
	FieldFGMade:         {"fg", "fgm"},
	FieldFGAttempted:    {"fga"},
	FieldThreesMade:     {"3p", "3pm", "tpm"},
	FieldThreesAttempts: {"3pa", "tpa"},
	FieldFTMade:         {"ft", "ftm"},
	FieldFTAttempted:    {"fta"},
	FieldScoreFor:       {"score_team", "pts_for", "team_score"},
	FieldScoreAgainst:   {"score_opponent", "pts_against", "opp_score"},
}

// Fields lists every canonical field in a stable order.
func Fields() []Field {
	return []Field{
		FieldGameID, FieldDate, FieldOpponent, FieldResult, FieldSeason, FieldPhase,
		FieldMinutes, FieldPoints, FieldReboundsTotal, FieldReboundsOff, FieldReboundsDef,
		FieldAssists, FieldSteals, FieldBlocks, FieldTurnovers, FieldFouls,
		FieldFGMade, FieldFGAttempted, FieldThreesMade, FieldThreesAttempts, FieldFTMade, FieldFTAttempted,
		FieldScoreFor, FieldScoreAgainst,
	}
}

// ColumnSchema holds the priority-ordered header synonyms of every field.
// Values are never mutated after construction.
type ColumnSchema struct {
	synonyms map[Field][]string
}

// NewColumnSchema builds a schema from the given synonyms. Fields missing
// from synonyms keep the default list.
func NewColumnSchema(synonyms map[Field][]string) ColumnSchema {
	out := make(map[Field][]string, len(defaultSynonyms))
	for field, names := range defaultSynonyms {
		out[field] = normalizeNames(names)
	}
	for field, names := range synonyms {
		normalized := normalizeNames(names)
		if len(normalized) == 0 {
			continue
		}
		out[field] = normalized
	}
	return ColumnSchema{synonyms: out}
}

func DefaultColumnSchema() ColumnSchema {
	return NewColumnSchema(nil)
}

// Synonyms returns a copy of the header names tried for field.
func (s ColumnSchema) Synonyms(field Field) []string {
	return append([]string(nil), s.synonyms[field]...)
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = NormalizeHeader(name)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// NormalizeHeader lower-cases a header cell and strips whitespace and a
// leading byte-order mark.
func NormalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// Decoded is a numeric cell after decoding. Defaulted reports that the cell
// was missing or not numeric and Value is the substituted zero.
type Decoded struct {
	Value     float64
	Defaulted bool
}

// Resolver looks up canonical fields in raw rows.
type Resolver struct {
	schema ColumnSchema
}

func NewResolver(schema ColumnSchema) Resolver {
	return Resolver{schema: schema}
}

// Resolve returns the first non-empty value among the field's synonyms, or
// "" when none is present.
func (r Resolver) Resolve(row RawRow, field Field) string {
	for _, name := range r.schema.synonyms[field] {
		if value, ok := lookup(row, name); ok {
			return value
		}
	}
	return ""
}

// Number resolves field and decodes it as a number.
func (r Resolver) Number(row RawRow, field Field) Decoded {
	value, ok := ParseNumber(r.Resolve(row, field))
	if !ok {
		return Decoded{Defaulted: true}
	}
	return Decoded{Value: value}
}

func lookup(row RawRow, name string) (string, bool) {
	if value, ok := row[name]; ok {
		if value = strings.TrimSpace(value); value != "" {
			return value, true
		}
	}
	// Among loose matches the smallest key wins, so map order never decides.
	bestKey, bestValue := "", ""
	for key, value := range row {
		if key == name || NormalizeHeader(key) != name {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if bestValue == "" || key < bestKey {
			bestKey, bestValue = key, value
		}
	}
	return bestValue, bestValue != ""
}

// ParseNumber decodes the longest leading decimal number of raw, so "12 "
// and "7*" decode as 12 and 7. Non-finite values are rejected.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		fraction := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			fraction++
		}
		if digits > 0 || fraction > 0 {
			i = j
			digits += fraction
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
