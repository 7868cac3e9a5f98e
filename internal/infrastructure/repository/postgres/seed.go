package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-manager/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo leagues into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		if err := namedExec(ctx, tx, `
INSERT INTO leagues (public_id, owner_user_id, name)
VALUES (:public_id, :owner_user_id, :name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":     l.ID,
			"owner_user_id": l.OwnerUserID,
			"name":          l.Name,
		}); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		if err := namedExec(ctx, tx, `
INSERT INTO teams (public_id, league_public_id, name)
VALUES (:public_id, :league_public_id, :name)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        t.ID,
			"league_public_id": t.LeagueID,
			"name":             t.Name,
		}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, f := range memory.SeedFixtures() {
		if err := namedExec(ctx, tx, `
INSERT INTO fixtures (public_id, league_public_id, gameweek, home_team_public_id, away_team_public_id, kickoff_at, venue, status)
VALUES (:public_id, :league_public_id, :gameweek, :home_team_public_id, :away_team_public_id, :kickoff_at, :venue, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           f.ID,
			"league_public_id":    f.LeagueID,
			"gameweek":            f.Gameweek,
			"home_team_public_id": f.HomeTeamID,
			"away_team_public_id": f.AwayTeamID,
			"kickoff_at":          f.KickoffAt,
			"venue":               f.Venue,
			"status":              f.Status,
		}); err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func namedExec(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...)
	return err
}
