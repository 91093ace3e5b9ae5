package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/mystats/internal/domain/roster"
	qb "github.com/riskibarqy/mystats/internal/platform/querybuilder"
)

var (
	teamColumns   = []string{"slug", "name", "logo", "league", "roster", "sort_order"}
	playerColumns = []string{"slug", "name", "number", "position", "image", "team_slug", "sort_order"}
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListTeams(ctx context.Context) ([]roster.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").OrderBy("sort_order", "slug").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := selectRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromModel(row))
	}
	return out, nil
}

func (r *RosterRepository) GetTeam(ctx context.Context, teamID string) (roster.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams").Where(qb.Eq("slug", teamID)).Limit(1).ToSQL()
	if err != nil {
		return roster.Team{}, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	err = getRetry(ctx, r.db, &row, query, args...)
	if isNotFound(err) {
		return roster.Team{}, roster.ErrNotFound
	}
	if err != nil {
		return roster.Team{}, fmt.Errorf("select team slug=%s: %w", teamID, err)
	}
	return teamFromModel(row), nil
}

func (r *RosterRepository) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players").OrderBy("sort_order", "slug").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := selectRetry(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromModel(row))
	}
	return out, nil
}

func (r *RosterRepository) GetPlayer(ctx context.Context, playerID string) (roster.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players").Where(qb.Eq("slug", playerID)).Limit(1).ToSQL()
	if err != nil {
		return roster.Player{}, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	err = getRetry(ctx, r.db, &row, query, args...)
	if isNotFound(err) {
		return roster.Player{}, roster.ErrNotFound
	}
	if err != nil {
		return roster.Player{}, fmt.Errorf("select player slug=%s: %w", playerID, err)
	}
	return playerFromModel(row), nil
}

// UpsertRoster writes teams and players keeping the given order.
func (r *RosterRepository) UpsertRoster(ctx context.Context, teams []roster.Team, players []roster.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert roster: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(teams) > 0 {
		models := make([]teamTableModel, 0, len(teams))
		for i, t := range teams {
			models = append(models, teamTableModel{
				Slug:      t.ID,
				Name:      t.Name,
				Logo:      t.Logo,
				League:    t.League,
				Roster:    pq.StringArray(append([]string{}, t.Roster...)),
				SortOrder: i,
			})
		}
		query, args, err := qb.InsertModels("teams", models, `ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    logo = EXCLUDED.logo,
    league = EXCLUDED.league,
    roster = EXCLUDED.roster,
    sort_order = EXCLUDED.sort_order`)
		if err != nil {
			return fmt.Errorf("build upsert teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert teams: %w", err)
		}
	}

	if len(players) > 0 {
		models := make([]playerTableModel, 0, len(players))
		for i, p := range players {
			models = append(models, playerTableModel{
				Slug:      p.ID,
				Name:      p.Name,
				Number:    p.Number,
				Position:  p.Position,
				Image:     p.Image,
				TeamSlug:  p.TeamID,
				SortOrder: i,
			})
		}
		query, args, err := qb.InsertModels("players", models, `ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    number = EXCLUDED.number,
    position = EXCLUDED.position,
    image = EXCLUDED.image,
    team_slug = EXCLUDED.team_slug,
    sort_order = EXCLUDED.sort_order`)
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert roster tx: %w", err)
	}
	return nil
}

func teamFromModel(row teamTableModel) roster.Team {
	return roster.Team{
		ID:     row.Slug,
		Name:   row.Name,
		Logo:   row.Logo,
		League: row.League,
		Roster: []string(row.Roster),
	}
}

func playerFromModel(row playerTableModel) roster.Player {
	return roster.Player{
		ID:       row.Slug,
		Name:     row.Name,
		Number:   row.Number,
		Position: row.Position,
		Image:    row.Image,
		TeamID:   row.TeamSlug,
	}
}
