package httpapi

import (
	"github.com/riskibarqy/mystats/internal/domain/aggregate"
	"github.com/riskibarqy/mystats/internal/domain/boxscore"
	"github.com/riskibarqy/mystats/internal/domain/roster"
	"github.com/riskibarqy/mystats/internal/usecase"
)

type teamDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Logo   string   `json:"logo,omitempty"`
	League string   `json:"league,omitempty"`
	Roster []string `json:"roster"`
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   string `json:"number,omitempty"`
	Position string `json:"position,omitempty"`
	Image    string `json:"image,omitempty"`
	TeamID   string `json:"team_id,omitempty"`
}

type filterDTO struct {
	Season string `json:"season"`
	Phase  string `json:"phase"`
}

type statLineDTO struct {
	GamesPlayed int                  `json:"games_played"`
	Totals      aggregate.Totals     `json:"totals"`
	PerGame     aggregate.Totals     `json:"per_game"`
	FG          aggregate.Shooting   `json:"fg"`
	ThreePoint  aggregate.Shooting   `json:"three_point"`
	FreeThrow   aggregate.Shooting   `json:"free_throw"`
	FGPct       aggregate.Percentage `json:"fg_pct"`
	ThreePct    aggregate.Percentage `json:"three_pct"`
	FTPct       aggregate.Percentage `json:"ft_pct"`
}

type playerAveragesDTO struct {
	Player playerDTO   `json:"player"`
	Filter filterDTO   `json:"filter"`
	Line   statLineDTO `json:"line"`
}

type playerGamesDTO struct {
	Player playerDTO               `json:"player"`
	Filter filterDTO               `json:"filter"`
	Games  []boxscore.GameStatLine `json:"games"`
}

type leaderRowDTO struct {
	Rank   int         `json:"rank"`
	Player playerDTO   `json:"player"`
	Value  *float64    `json:"value"`
	Line   statLineDTO `json:"line"`
}

type leaderboardDTO struct {
	Team   teamDTO        `json:"team"`
	Filter filterDTO      `json:"filter"`
	Sort   string         `json:"sort"`
	Mode   string         `json:"mode"`
	Rows   []leaderRowDTO `json:"rows"`
}

type recordDTO struct {
	Stat     string    `json:"stat"`
	Label    string    `json:"label"`
	Value    float64   `json:"value"`
	Player   playerDTO `json:"player"`
	GameID   string    `json:"game_id"`
	Date     string    `json:"date"`
	Opponent string    `json:"opponent"`
}

type teamRecordsDTO struct {
	Team    teamDTO     `json:"team"`
	Filter  filterDTO   `json:"filter"`
	Records []recordDTO `json:"records"`
}

type teamGamesDTO struct {
	Team   teamDTO                 `json:"team"`
	Filter filterDTO               `json:"filter"`
	Wins   int                     `json:"wins"`
	Losses int                     `json:"losses"`
	Ties   int                     `json:"ties"`
	Games  []boxscore.GameStatLine `json:"games"`
}

type seasonsDTO struct {
	EntityID string   `json:"entity_id"`
	Seasons  []string `json:"seasons"`
}

type ingestResultDTO struct {
	EntityID string `json:"entity_id"`
	Stored   int    `json:"stored"`
}

func teamToDTO(v roster.Team) teamDTO {
	players := v.Roster
	if players == nil {
		players = []string{}
	}
	return teamDTO{
		ID:     v.ID,
		Name:   v.DisplayName(),
		Logo:   v.Logo,
		League: v.League,
		Roster: players,
	}
}

func playerToDTO(v roster.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		Name:     v.DisplayName(),
		Number:   v.Number,
		Position: v.Position,
		Image:    v.Image,
		TeamID:   v.TeamID,
	}
}

func filterToDTO(v boxscore.Filter) filterDTO {
	out := filterDTO{Season: v.Season, Phase: v.Phase}
	if out.Season == "" {
		out.Season = boxscore.All
	}
	if out.Phase == "" {
		out.Phase = boxscore.All
	}
	return out
}

func statLineToDTO(v aggregate.Line) statLineDTO {
	return statLineDTO{
		GamesPlayed: v.GamesPlayed,
		Totals:      v.Totals,
		PerGame:     roundTotals(v.PerGame()),
		FG:          v.FG,
		ThreePoint:  v.ThreePoint,
		FreeThrow:   v.FreeThrow,
		FGPct:       v.FG.Percentage(),
		ThreePct:    v.ThreePoint.Percentage(),
		FTPct:       v.FreeThrow.Percentage(),
	}
}

func roundTotals(t aggregate.Totals) aggregate.Totals {
	return aggregate.Totals{
		Minutes:     aggregate.Round1(t.Minutes),
		Points:      aggregate.Round1(t.Points),
		Rebounds:    aggregate.Round1(t.Rebounds),
		OffRebounds: aggregate.Round1(t.OffRebounds),
		DefRebounds: aggregate.Round1(t.DefRebounds),
		Assists:     aggregate.Round1(t.Assists),
		Steals:      aggregate.Round1(t.Steals),
		Blocks:      aggregate.Round1(t.Blocks),
		Turnovers:   aggregate.Round1(t.Turnovers),
		Fouls:       aggregate.Round1(t.Fouls),
	}
}

func gamesOrEmpty(games []boxscore.GameStatLine) []boxscore.GameStatLine {
	if games == nil {
		return []boxscore.GameStatLine{}
	}
	return games
}

func leaderboardToDTO(v usecase.Leaderboard) leaderboardDTO {
	rows := make([]leaderRowDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		item := leaderRowDTO{
			Rank:   row.Rank,
			Player: playerToDTO(row.Player),
			Line:   statLineToDTO(row.Line),
		}
		if row.Valid {
			value := aggregate.Round1(row.Value)
			item.Value = &value
		}
		rows = append(rows, item)
	}
	return leaderboardDTO{
		Team:   teamToDTO(v.Team),
		Filter: filterToDTO(v.Filter),
		Sort:   string(v.SortKey),
		Mode:   string(v.Mode),
		Rows:   rows,
	}
}

func teamRecordsToDTO(v usecase.TeamRecords) teamRecordsDTO {
	records := make([]recordDTO, 0, len(v.Records))
	for _, item := range v.Records {
		records = append(records, recordDTO{
			Stat:     string(item.StatKey),
			Label:    item.Label,
			Value:    item.Value,
			Player:   playerToDTO(item.Player),
			GameID:   item.GameID,
			Date:     item.Date,
			Opponent: item.Opponent,
		})
	}
	return teamRecordsDTO{
		Team:    teamToDTO(v.Team),
		Filter:  filterToDTO(v.Filter),
		Records: records,
	}
}

func seasonsToDTO(entityID string, seasons []string) seasonsDTO {
	if seasons == nil {
		seasons = []string{}
	}
	return seasonsDTO{EntityID: entityID, Seasons: seasons}
}
