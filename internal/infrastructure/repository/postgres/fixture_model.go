package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	LeagueID   string        `db:"league_public_id"`
	Gameweek   int           `db:"gameweek"`
	HomeTeamID string        `db:"home_team_public_id"`
	AwayTeamID string        `db:"away_team_public_id"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	Venue      string        `db:"venue"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}

type fixtureInsertModel struct {
	PublicID   string        `db:"public_id"`
	LeagueID   string        `db:"league_public_id"`
	Gameweek   int           `db:"gameweek"`
	HomeTeamID string        `db:"home_team_public_id"`
	AwayTeamID string        `db:"away_team_public_id"`
	KickoffAt  time.Time     `db:"kickoff_at"`
	Venue      string        `db:"venue"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:         m.PublicID,
		LeagueID:   m.LeagueID,
		Gameweek:   m.Gameweek,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		KickoffAt:  m.KickoffAt.UTC(),
		Venue:      m.Venue,
		HomeScore:  nullInt64ToIntPtr(m.HomeScore),
		AwayScore:  nullInt64ToIntPtr(m.AwayScore),
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}
