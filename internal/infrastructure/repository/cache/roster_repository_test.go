package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/mystats/internal/domain/roster"
	rostermock "github.com/riskibarqy/mystats/internal/mocks/domain/roster"
	basecache "github.com/riskibarqy/mystats/internal/platform/cache"
)

func newCachedRoster(next roster.Repository) *RosterRepository {
	return NewRosterRepository(next,
		basecache.NewStore[[]roster.Team](time.Minute),
		basecache.NewStore[[]roster.Player](time.Minute),
	)
}

func TestRosterRepository_CachesLists(t *testing.T) {
	t.Parallel()

	next := rostermock.NewRepository(t)
	next.On("ListTeams", mock.Anything).
		Return([]roster.Team{{ID: "hawks", Roster: []string{"ana"}}}, nil).
		Once()
	next.On("ListPlayers", mock.Anything).
		Return([]roster.Player{{ID: "ana", Name: "Ana"}}, nil).
		Once()

	repo := newCachedRoster(next)
	ctx := context.Background()

	teams, err := repo.ListTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	teams[0].Roster[0] = "mutated"

	team, err := repo.GetTeam(ctx, "hawks")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if team.Roster[0] != "ana" {
		t.Fatalf("cached roster must not be shared with callers, got %v", team.Roster)
	}

	player, err := repo.GetPlayer(ctx, " ana ")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if player.Name != "Ana" {
		t.Fatalf("unexpected player: %+v", player)
	}
	if _, err := repo.GetPlayer(ctx, "zed"); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected roster.ErrNotFound, got %v", err)
	}
	if _, err := repo.GetTeam(ctx, "owls"); !errors.Is(err, roster.ErrNotFound) {
		t.Fatalf("expected roster.ErrNotFound, got %v", err)
	}
}

func TestRosterRepository_Invalidate(t *testing.T) {
	t.Parallel()

	next := rostermock.NewRepository(t)
	next.On("ListTeams", mock.Anything).Return([]roster.Team{{ID: "hawks"}}, nil).Twice()

	repo := newCachedRoster(next)
	ctx := context.Background()

	if _, err := repo.ListTeams(ctx); err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if err := repo.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := repo.ListTeams(ctx); err != nil {
		t.Fatalf("list teams after invalidate: %v", err)
	}
}

func TestRosterRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := rostermock.NewRepository(t)
	next.On("ListPlayers", mock.Anything).Return(nil, errors.New("db down")).Once()
	next.On("ListPlayers", mock.Anything).Return([]roster.Player{{ID: "ana"}}, nil).Once()

	repo := newCachedRoster(next)
	ctx := context.Background()

	if _, err := repo.ListPlayers(ctx); err == nil {
		t.Fatalf("expected error from failing repository")
	}
	players, err := repo.ListPlayers(ctx)
	if err != nil || len(players) != 1 {
		t.Fatalf("expected reload after failure, got %v %v", players, err)
	}
}
