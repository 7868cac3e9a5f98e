package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
	now    func() time.Time
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
		now:    time.Now,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		if l, ok := r.items[id]; ok {
			out = append(out, l)
		}
	}

	return out, nil
}

func (r *LeagueRepository) ListByOwner(_ context.Context, ownerUserID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, id := range r.orders {
		l, ok := r.items[id]
		if ok && l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return nil
}

func (r *LeagueRepository) UpdateName(_ context.Context, leagueID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.ErrNotFound
	}
	l.Name = name
	l.UpdatedAt = r.now().UTC()
	r.items[leagueID] = l

	return nil
}

// SoftDelete drops the league from every read; the id keeps its slot in orders.
func (r *LeagueRepository) SoftDelete(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[leagueID]; !ok {
		return league.ErrNotFound
	}
	delete(r.items, leagueID)

	return nil
}
