package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-manager/internal/domain/team"
)

type TeamRepository struct {
	mu            sync.RWMutex
	teamsByLeague map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	teamsByLeague := make(map[string][]team.Team)
	for _, item := range teams {
		teamsByLeague[item.LeagueID] = append(teamsByLeague[item.LeagueID], item)
	}

	return &TeamRepository{teamsByLeague: teamsByLeague}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.teamsByLeague[leagueID]
	out := make([]team.Team, 0, len(teams))
	out = append(out, teams...)

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, leagueID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := indexOfTeam(r.teamsByLeague[leagueID], teamID); idx >= 0 {
		return r.teamsByLeague[leagueID][idx], true, nil
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.teamsByLeague[item.LeagueID]
	if nameTaken(rows, "", item.Name) {
		return team.ErrDuplicateName
	}
	r.teamsByLeague[item.LeagueID] = append(rows, item)

	return nil
}

func (r *TeamRepository) UpdateName(_ context.Context, leagueID, teamID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.teamsByLeague[leagueID]
	idx := indexOfTeam(rows, teamID)
	if idx < 0 {
		return team.ErrNotFound
	}
	if nameTaken(rows, teamID, name) {
		return team.ErrDuplicateName
	}
	rows[idx].Name = name

	return nil
}

func (r *TeamRepository) SoftDelete(_ context.Context, leagueID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.teamsByLeague[leagueID]
	idx := indexOfTeam(rows, teamID)
	if idx < 0 {
		return team.ErrNotFound
	}
	r.teamsByLeague[leagueID] = append(rows[:idx:idx], rows[idx+1:]...)

	return nil
}

func (r *TeamRepository) SoftDeleteByLeague(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teamsByLeague, leagueID)
	return nil
}

func indexOfTeam(rows []team.Team, teamID string) int {
	for idx := range rows {
		if rows[idx].ID == teamID {
			return idx
		}
	}
	return -1
}

func nameTaken(rows []team.Team, selfID, name string) bool {
	for _, row := range rows {
		if row.ID != selfID && team.SameName(row.Name, name) {
			return true
		}
	}
	return false
}
