package postgres

import (
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	OwnerUserID string     `db:"owner_user_id"`
	Name        string     `db:"name"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID    string `db:"public_id"`
	OwnerUserID string `db:"owner_user_id"`
	Name        string `db:"name"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.PublicID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
