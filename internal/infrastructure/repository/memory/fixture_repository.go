package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
)

type FixtureRepository struct {
	mu               sync.RWMutex
	fixturesByLeague map[string][]fixture.Fixture
	now              func() time.Time
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByLeague := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesByLeague[item.LeagueID] = append(fixturesByLeague[item.LeagueID], item)
	}

	return &FixtureRepository{fixturesByLeague: fixturesByLeague, now: time.Now}
}

// ListByLeague orders by gameweek, then kickoff.
func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesByLeague[leagueID]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Gameweek != out[j].Gameweek {
			return out[i].Gameweek < out[j].Gameweek
		}
		return out[i].KickoffAt.Before(out[j].KickoffAt)
	})

	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, leagueID, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := indexOfFixture(r.fixturesByLeague[leagueID], fixtureID); idx >= 0 {
		return r.fixturesByLeague[leagueID][idx], true, nil
	}

	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) Create(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.now().UTC()
	}
	r.fixturesByLeague[item.LeagueID] = append(r.fixturesByLeague[item.LeagueID], item)

	return nil
}

func (r *FixtureRepository) Update(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.fixturesByLeague[item.LeagueID]
	idx := indexOfFixture(rows, item.ID)
	if idx < 0 {
		return fixture.ErrNotFound
	}
	item.CreatedAt = rows[idx].CreatedAt
	rows[idx] = item

	return nil
}

func (r *FixtureRepository) SoftDelete(_ context.Context, leagueID, fixtureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.fixturesByLeague[leagueID]
	idx := indexOfFixture(rows, fixtureID)
	if idx < 0 {
		return fixture.ErrNotFound
	}
	r.fixturesByLeague[leagueID] = append(rows[:idx:idx], rows[idx+1:]...)

	return nil
}

func indexOfFixture(rows []fixture.Fixture, fixtureID string) int {
	for idx := range rows {
		if rows[idx].ID == fixtureID {
			return idx
		}
	}
	return -1
}
