package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/mystats/internal/domain/roster"
)

// RosterRepository keeps teams and players in their load order.
type RosterRepository struct {
	mu      sync.RWMutex
	teams   []roster.Team
	players []roster.Player
}

func NewRosterRepository(teams []roster.Team, players []roster.Player) *RosterRepository {
	r := &RosterRepository{}
	r.Replace(teams, players)
	return r
}

// Replace swaps the whole directory. Players missing a team inherit the
// first team that lists them.
func (r *RosterRepository) Replace(teams []roster.Team, players []roster.Player) {
	teamOf := make(map[string]string)
	for _, t := range teams {
		for _, playerID := range t.Roster {
			if _, seen := teamOf[playerID]; !seen {
				teamOf[playerID] = t.ID
			}
		}
	}

	ownPlayers := make([]roster.Player, 0, len(players))
	for _, p := range players {
		if strings.TrimSpace(p.TeamID) == "" {
			p.TeamID = teamOf[p.ID]
		}
		ownPlayers = append(ownPlayers, p)
	}

	ownTeams := make([]roster.Team, 0, len(teams))
	for _, t := range teams {
		t.Roster = append([]string(nil), t.Roster...)
		ownTeams = append(ownTeams, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = ownTeams
	r.players = ownPlayers
}

func (r *RosterRepository) ListTeams(_ context.Context) ([]roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Team, 0, len(r.teams))
	for _, t := range r.teams {
		t.Roster = append([]string(nil), t.Roster...)
		out = append(out, t)
	}
	return out, nil
}

func (r *RosterRepository) GetTeam(_ context.Context, teamID string) (roster.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teams {
		if t.ID == teamID {
			t.Roster = append([]string(nil), t.Roster...)
			return t, nil
		}
	}
	return roster.Team{}, roster.ErrNotFound
}

func (r *RosterRepository) ListPlayers(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Player(nil), r.players...), nil
}

func (r *RosterRepository) GetPlayer(_ context.Context, playerID string) (roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return roster.Player{}, roster.ErrNotFound
}
