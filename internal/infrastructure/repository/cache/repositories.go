package cache

import (
	"context"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	basecache "github.com/riskibarqy/league-manager/internal/platform/cache"
)

const (
	leagueListKey        = "league:list"
	leagueOwnerKeyPrefix = "league:owner:"
	leagueIDKeyPrefix    = "league:id:"
	teamListKeyPrefix    = "team:list:"
	teamIDKeyPrefix      = "team:id:"
	fixtureListKeyPrefix = "fixture:list:"
	fixtureIDKeyPrefix   = "fixture:id:"
)

// Store is shared by every decorator; values are type-asserted on read.
type Store = basecache.Store[any]

type LeagueRepository struct {
	next  league.Repository
	cache *Store
}

func NewLeagueRepository(next league.Repository, cache *Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.loadList(ctx, leagueListKey, r.next.List)
}

func (r *LeagueRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]league.League, error) {
	return r.loadList(ctx, leagueOwnerKeyPrefix+ownerUserID, func(ctx context.Context) ([]league.League, error) {
		return r.next.ListByOwner(ctx, ownerUserID)
	})
}

func (r *LeagueRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]league.League, error)) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leagueIDKeyPrefix+leagueID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, leagueListKey, leagueOwnerKeyPrefix+item.OwnerUserID, leagueIDKeyPrefix+item.ID)
	return nil
}

func (r *LeagueRepository) UpdateName(ctx context.Context, leagueID, name string) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.UpdateName(ctx, leagueID, name)
}

func (r *LeagueRepository) SoftDelete(ctx context.Context, leagueID string) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.SoftDelete(ctx, leagueID)
}

func (r *LeagueRepository) invalidate(ctx context.Context, leagueID string) {
	r.cache.Delete(ctx, leagueListKey, leagueIDKeyPrefix+leagueID)
	r.cache.DeletePrefix(ctx, leagueOwnerKeyPrefix)
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *Store
}

func NewTeamRepository(next team.Repository, cache *Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamListKeyPrefix+leagueID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	key := teamIDKeyPrefix + leagueID + ":" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	defer r.invalidate(ctx, item.LeagueID)
	return r.next.Create(ctx, item)
}

func (r *TeamRepository) UpdateName(ctx context.Context, leagueID, teamID, name string) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.UpdateName(ctx, leagueID, teamID, name)
}

func (r *TeamRepository) SoftDelete(ctx context.Context, leagueID, teamID string) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.SoftDelete(ctx, leagueID, teamID)
}

func (r *TeamRepository) SoftDeleteByLeague(ctx context.Context, leagueID string) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.SoftDeleteByLeague(ctx, leagueID)
}

func (r *TeamRepository) invalidate(ctx context.Context, leagueID string) {
	r.cache.Delete(ctx, teamListKeyPrefix+leagueID)
	r.cache.DeletePrefix(ctx, teamIDKeyPrefix+leagueID+":")
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *Store
}

func NewFixtureRepository(next fixture.Repository, cache *Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	v, err := r.cache.GetOrLoad(ctx, fixtureListKeyPrefix+leagueID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cloneFixtures(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return cloneFixtures(items), nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, leagueID, fixtureID string) (fixture.Fixture, bool, error) {
	key := fixtureIDKeyPrefix + leagueID + ":" + fixtureID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cloneFixture(cached.value), cached.exists, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	defer r.invalidate(ctx, item.LeagueID)
	return r.next.Create(ctx, item)
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	defer r.invalidate(ctx, item.LeagueID)
	return r.next.Update(ctx, item)
}

func (r *FixtureRepository) SoftDelete(ctx context.Context, leagueID, fixtureID string) error {
	defer r.invalidate(ctx, leagueID)
	return r.next.SoftDelete(ctx, leagueID, fixtureID)
}

func (r *FixtureRepository) invalidate(ctx context.Context, leagueID string) {
	r.cache.Delete(ctx, fixtureListKeyPrefix+leagueID)
	r.cache.DeletePrefix(ctx, fixtureIDKeyPrefix+leagueID+":")
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}

// Scores are pointers, so cached fixtures are copied deep enough to keep callers apart.
func cloneFixture(item fixture.Fixture) fixture.Fixture {
	if item.HomeScore != nil {
		v := *item.HomeScore
		item.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		item.AwayScore = &v
	}
	return item
}

func cloneFixtures(items []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, cloneFixture(item))
	}
	return out
}
