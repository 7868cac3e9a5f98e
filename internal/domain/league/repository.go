package league

import "context"

// Repository describes league persistence needs from use cases.
// UpdateName and SoftDelete return ErrNotFound when no live row matches.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	Create(ctx context.Context, item League) error
	UpdateName(ctx context.Context, leagueID, name string) error
	SoftDelete(ctx context.Context, leagueID string) error
}
