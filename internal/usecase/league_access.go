package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-manager/internal/domain/league"
)

func getLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

// requireLeagueOwner loads the league and checks that userID created it.
func requireLeagueOwner(ctx context.Context, repo league.Repository, userID, leagueID string) (league.League, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	item, err := getLeague(ctx, repo, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if !item.OwnedBy(userID) {
		return league.League{}, fmt.Errorf("%w: league=%s is not owned by user=%s", ErrForbidden, item.ID, userID)
	}

	return item, nil
}
