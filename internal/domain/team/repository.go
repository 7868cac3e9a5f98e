package team

import "context"

// Repository describes team persistence needs from use cases.
// Create and UpdateName return ErrDuplicateName on a per-league name collision;
// UpdateName and SoftDelete return ErrNotFound when no live row matches.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, leagueID, teamID string) (Team, bool, error)
	Create(ctx context.Context, item Team) error
	UpdateName(ctx context.Context, leagueID, teamID, name string) error
	SoftDelete(ctx context.Context, leagueID, teamID string) error
	SoftDeleteByLeague(ctx context.Context, leagueID string) error
}
