package aggregate

import "github.com/riskibarqy/mystats/internal/domain/boxscore"

// Aggregate sums lines into a single Line. Every line counts as one game
// played, whatever its minutes.
func Aggregate(entityID string, lines []boxscore.GameStatLine) Line {
	out := Line{EntityID: entityID, GamesPlayed: len(lines)}
	for _, line := range lines {
		out.Totals.Minutes += line.Minutes
		out.Totals.Points += line.Points
		out.Totals.Rebounds += line.ReboundsTotal
		out.Totals.OffRebounds += line.ReboundsOff
		out.Totals.DefRebounds += line.ReboundsDef
		out.Totals.Assists += line.Assists
		out.Totals.Steals += line.Steals
		out.Totals.Blocks += line.Blocks
		out.Totals.Turnovers += line.Turnovers
		out.Totals.Fouls += line.Fouls

		out.FG.Made += line.FieldGoals.Made
		out.FG.Attempted += line.FieldGoals.Attempted
		out.ThreePoint.Made += line.ThreePointers.Made
		out.ThreePoint.Attempted += line.ThreePointers.Attempted
		out.FreeThrow.Made += line.FreeThrows.Made
		out.FreeThrow.Attempted += line.FreeThrows.Attempted
	}
	return out
}
