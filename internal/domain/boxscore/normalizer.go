package boxscore

import (
	"strings"

	"github.com/riskibarqy/mystats/internal/domain/season"
)

// Audit lists the numeric fields of a row that were missing or not numeric
// and therefore decoded as zero.
type Audit struct {
	Defaulted []Field
}

func (a Audit) Empty() bool {
	return len(a.Defaulted) == 0
}

// Normalizer turns raw rows into GameStatLines. It never fails: every field
// that cannot be read takes its default.
type Normalizer struct {
	resolver   Resolver
	classifier season.Classifier
}

func NewNormalizer(schema ColumnSchema, classifier season.Classifier) Normalizer {
	return Normalizer{
		resolver:   NewResolver(schema),
		classifier: classifier,
	}
}

func (n Normalizer) Normalize(row RawRow, entityID string) GameStatLine {
	line, _ := n.NormalizeAudited(row, entityID)
	return line
}

func (n Normalizer) NormalizeAudited(row RawRow, entityID string) (GameStatLine, Audit) {
	var audit Audit
	number := func(field Field) float64 {
		decoded := n.resolver.Number(row, field)
		if decoded.Defaulted {
			audit.Defaulted = append(audit.Defaulted, field)
		}
		return decoded.Value
	}

	line := GameStatLine{
		EntityID: strings.TrimSpace(entityID),
		GameID:   n.resolver.Resolve(row, FieldGameID),
		Date:     n.resolver.Resolve(row, FieldDate),
		Opponent: n.resolver.Resolve(row, FieldOpponent),
		Result:   n.resolver.Resolve(row, FieldResult),
		Phase:    ParsePhase(n.resolver.Resolve(row, FieldPhase)),
	}
	classification := n.classifier.Resolve(n.resolver.Resolve(row, FieldSeason), line.Date)
	line.SeasonLabel = classification.Label
	line.Year = classification.Year

	line.Minutes = number(FieldMinutes)
	line.Points = number(FieldPoints)

	total := n.resolver.Number(row, FieldReboundsTotal)
	line.ReboundsOff = number(FieldReboundsOff)
	line.ReboundsDef = number(FieldReboundsDef)
	if !total.Defaulted && total.Value != 0 {
		line.ReboundsTotal = total.Value
	} else {
		line.ReboundsTotal = line.ReboundsOff + line.ReboundsDef
		if total.Defaulted && line.ReboundsTotal == 0 {
			audit.Defaulted = append(audit.Defaulted, FieldReboundsTotal)
		}
	}

	line.Assists = number(FieldAssists)
	line.Steals = number(FieldSteals)
	line.Blocks = number(FieldBlocks)
	line.Turnovers = number(FieldTurnovers)
	line.Fouls = number(FieldFouls)

	line.FieldGoals = Shooting{Made: number(FieldFGMade), Attempted: number(FieldFGAttempted)}
	line.ThreePointers = Shooting{Made: number(FieldThreesMade), Attempted: number(FieldThreesAttempts)}
	line.FreeThrows = Shooting{Made: number(FieldFTMade), Attempted: number(FieldFTAttempted)}

	line.ScoreFor = number(FieldScoreFor)
	line.ScoreAgainst = number(FieldScoreAgainst)

	return line, audit
}

// NormalizeAll normalizes rows in order. Malformed rows stay in the output
// as zeroed lines.
func (n Normalizer) NormalizeAll(rows []RawRow, entityID string) []GameStatLine {
	out := make([]GameStatLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.Normalize(row, entityID))
	}
	return out
}
