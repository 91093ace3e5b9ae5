package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/mystats/internal/domain/roster"
	basecache "github.com/riskibarqy/mystats/internal/platform/cache"
)

const (
	teamListKey   = "roster:teams"
	playerListKey = "roster:players"
	rosterPrefix  = "roster:"
)

// RosterRepository keeps the team and player lists of a slower repository
// in a Store. Lookups by id are served from the cached lists.
type RosterRepository struct {
	next    roster.Repository
	teams   *basecache.Store[[]roster.Team]
	players *basecache.Store[[]roster.Player]
}

func NewRosterRepository(
	next roster.Repository,
	teams *basecache.Store[[]roster.Team],
	players *basecache.Store[[]roster.Player],
) *RosterRepository {
	return &RosterRepository{next: next, teams: teams, players: players}
}

func (r *RosterRepository) ListTeams(ctx context.Context) ([]roster.Team, error) {
	items, _, err := r.teams.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]roster.Team, error) {
		items, err := r.next.ListTeams(ctx)
		if err != nil {
			return nil, err
		}
		return cloneTeams(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneTeams(items), nil
}

func (r *RosterRepository) GetTeam(ctx context.Context, teamID string) (roster.Team, error) {
	items, err := r.ListTeams(ctx)
	if err != nil {
		return roster.Team{}, err
	}
	teamID = strings.TrimSpace(teamID)
	for _, item := range items {
		if item.ID == teamID {
			return item, nil
		}
	}
	return roster.Team{}, fmt.Errorf("%w: team %s", roster.ErrNotFound, teamID)
}

func (r *RosterRepository) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	items, _, err := r.players.GetOrLoad(ctx, playerListKey, func(ctx context.Context) ([]roster.Player, error) {
		items, err := r.next.ListPlayers(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *RosterRepository) GetPlayer(ctx context.Context, playerID string) (roster.Player, error) {
	items, err := r.ListPlayers(ctx)
	if err != nil {
		return roster.Player{}, err
	}
	playerID = strings.TrimSpace(playerID)
	for _, item := range items {
		if item.ID == playerID {
			return item, nil
		}
	}
	return roster.Player{}, fmt.Errorf("%w: player %s", roster.ErrNotFound, playerID)
}

// Invalidate drops both cached lists.
func (r *RosterRepository) Invalidate(ctx context.Context) error {
	if err := r.teams.DeletePrefix(ctx, rosterPrefix); err != nil {
		return err
	}
	return r.players.DeletePrefix(ctx, rosterPrefix)
}

func cloneTeams(items []roster.Team) []roster.Team {
	out := make([]roster.Team, 0, len(items))
	for _, item := range items {
		item.Roster = slices.Clone(item.Roster)
		out = append(out, item)
	}
	return out
}
