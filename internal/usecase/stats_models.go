package usecase

import (
	"github.com/riskibarqy/mystats/internal/domain/aggregate"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/leaderboard"
	"github.com/riskibarqy/mystats/internal/domain/records"
	"github.com/riskibarqy/mystats/internal/domain/roster"
)

type PlayerSummary struct {
	Player roster.Player
	Filter boxscore.Filter
	Line   aggregate.Line
}

type PlayerGameLog struct {
	Player roster.Player
	Filter boxscore.Filter
	Games  []boxscore.GameStatLine
}

type LeaderboardRow struct {
	leaderboard.Entry
	Player roster.Player
}

type Leaderboard struct {
	Team    roster.Team
	Filter  boxscore.Filter
	SortKey leaderboard.SortKey
	Mode    leaderboard.Mode
	Rows    []LeaderboardRow
}

type RecordRow struct {
	records.Entry
	Player roster.Player
}

type TeamRecords struct {
	Team    roster.Team
	Filter  boxscore.Filter
	Records []RecordRow
}

// TeamGameLog is the team's own game list with its win/loss tally.
type TeamGameLog struct {
	Team   roster.Team
	Filter boxscore.Filter
	Games  []boxscore.GameStatLine
	Wins   int
	Losses int
	Ties   int
}
