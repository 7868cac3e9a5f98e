package fixture

import "context"

// Repository exposes fixture persistence scoped to a league.
// Update and SoftDelete return ErrNotFound when no live row matches.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
	GetByID(ctx context.Context, leagueID, fixtureID string) (Fixture, bool, error)
	Create(ctx context.Context, item Fixture) error
	Update(ctx context.Context, item Fixture) error
	SoftDelete(ctx context.Context, leagueID, fixtureID string) error
}
