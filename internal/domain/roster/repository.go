package roster

import "context"

// Repository describes roster lookups needed by use cases. Get methods
// return ErrNotFound for unknown ids.
type Repository interface {
	ListTeams(ctx context.Context) ([]Team, error)
	GetTeam(ctx context.Context, teamID string) (Team, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayer(ctx context.Context, playerID string) (Player, error)
}

// Invalidator is implemented by repositories that keep a cached copy of the
// directory.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
