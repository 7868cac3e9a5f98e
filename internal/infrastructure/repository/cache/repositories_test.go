package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	"github.com/riskibarqy/league-manager/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/league-manager/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTeamRepo struct {
	team.Repository
	lists atomic.Int32
}

func (c *countingTeamRepo) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	c.lists.Add(1)
	return c.Repository.ListByLeague(ctx, leagueID)
}

func TestTeamRepository_CachesListUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := &countingTeamRepo{Repository: memory.NewTeamRepository(memory.SeedTeams())}
	repo := NewTeamRepository(next, basecache.NewStore[any](time.Minute))

	first, err := repo.ListByLeague(ctx, memory.LeagueIDOfficeCup)
	require.NoError(t, err)
	_, err = repo.ListByLeague(ctx, memory.LeagueIDOfficeCup)
	require.NoError(t, err)
	assert.Equal(t, int32(1), next.lists.Load())

	// Callers get their own copy.
	first[0].Name = "mutated"

	require.NoError(t, repo.UpdateName(ctx, memory.LeagueIDOfficeCup, "tm-platform", "Platform Eng"))

	after, err := repo.ListByLeague(ctx, memory.LeagueIDOfficeCup)
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.lists.Load())
	assert.Equal(t, "Finance", after[0].Name)
	assert.Equal(t, "Platform Eng", after[1].Name)
}

func TestTeamRepository_FailedWriteStillInvalidates(t *testing.T) {
	ctx := context.Background()
	next := &countingTeamRepo{Repository: memory.NewTeamRepository(memory.SeedTeams())}
	repo := NewTeamRepository(next, basecache.NewStore[any](time.Minute))

	_, err := repo.ListByLeague(ctx, memory.LeagueIDOfficeCup)
	require.NoError(t, err)

	err = repo.Create(ctx, team.Team{ID: "tm-dup", LeagueID: memory.LeagueIDOfficeCup, Name: "finance"})
	assert.ErrorIs(t, err, team.ErrDuplicateName)

	_, err = repo.ListByLeague(ctx, memory.LeagueIDOfficeCup)
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.lists.Load())
}

func TestLeagueRepository_DeleteInvalidatesLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewLeagueRepository(memory.NewLeagueRepository(memory.SeedLeagues()), basecache.NewStore[any](time.Minute))

	_, exists, err := repo.GetByID(ctx, memory.LeagueIDSundayFive)
	require.NoError(t, err)
	require.True(t, exists)
	mine, err := repo.ListByOwner(ctx, memory.SeedOwnerUserID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	require.NoError(t, repo.SoftDelete(ctx, memory.LeagueIDSundayFive))

	_, exists, err = repo.GetByID(ctx, memory.LeagueIDSundayFive)
	require.NoError(t, err)
	assert.False(t, exists)
	mine, err = repo.ListByOwner(ctx, memory.SeedOwnerUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.Create(ctx, league.League{ID: "lg-3", OwnerUserID: memory.SeedOwnerUserID, Name: "Third"}))
	mine, err = repo.ListByOwner(ctx, memory.SeedOwnerUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
