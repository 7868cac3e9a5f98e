package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	fixturemock "github.com/riskibarqy/league-manager/internal/mocks/domain/fixture"
	leaguemock "github.com/riskibarqy/league-manager/internal/mocks/domain/league"
	teammock "github.com/riskibarqy/league-manager/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestFixtureService_ListByLeague_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	leagueRepo := leaguemock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(leagueRepo, teammock.NewRepository(t), fixtureRepo, nil)

	leagueID := "lg-1"
	expected := []fixture.Fixture{{
		ID:         "fx-001",
		LeagueID:   leagueID,
		Gameweek:   1,
		HomeTeamID: "tm-1",
		AwayTeamID: "tm-2",
		KickoffAt:  time.Date(2026, 11, 14, 19, 0, 0, 0, time.UTC),
		Venue:      "Riverside",
		Status:     fixture.StatusScheduled,
	}}

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	fixtureRepo.
		On("ListByLeague", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(expected, nil).
		Once()

	got, err := service.ListByLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("list fixtures by league: %v", err)
	}
	if len(got) != 1 || got[0].ID != "fx-001" {
		t.Fatalf("unexpected fixtures: %+v", got)
	}
}

func TestFixtureService_CreateFixture_RejectsForeignTeam(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(leagueRepo, teamRepo, fixtureRepo, &sequenceIDs{next: []string{"fx-1"}})

	leagueRepo.
		On("GetByID", mock.Anything, "lg-1").
		Return(league.League{ID: "lg-1", OwnerUserID: "owner"}, true, nil).
		Once()
	teamRepo.
		On("GetByID", mock.Anything, "lg-1", "tm-1").
		Return(team.Team{ID: "tm-1", LeagueID: "lg-1"}, true, nil).
		Once()
	teamRepo.
		On("GetByID", mock.Anything, "lg-1", "tm-other").
		Return(team.Team{}, false, nil).
		Once()

	_, err := service.CreateFixture(context.Background(), "owner", "lg-1", CreateFixtureInput{
		Gameweek:   1,
		HomeTeamID: "tm-1",
		AwayTeamID: "tm-other",
		KickoffAt:  time.Date(2026, 11, 14, 19, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_CreateFixture_SameTeamsRejectedBeforeLookup(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	service := NewFixtureService(leagueRepo, teammock.NewRepository(t), fixturemock.NewRepository(t), &sequenceIDs{next: []string{"fx-1"}})

	leagueRepo.
		On("GetByID", mock.Anything, "lg-1").
		Return(league.League{ID: "lg-1", OwnerUserID: "owner"}, true, nil).
		Once()

	_, err := service.CreateFixture(context.Background(), "owner", "lg-1", CreateFixtureInput{
		Gameweek:   2,
		HomeTeamID: "tm-1",
		AwayTeamID: "tm-1",
		KickoffAt:  time.Now(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_UpdateFixture_AppliesPartialChanges(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	service := NewFixtureService(leagueRepo, teamRepo, fixtureRepo, nil)

	kickoff := time.Date(2026, 11, 14, 19, 0, 0, 0, time.UTC)
	current := fixture.Fixture{
		ID: "fx-1", LeagueID: "lg-1", Gameweek: 1,
		HomeTeamID: "tm-1", AwayTeamID: "tm-2",
		KickoffAt: kickoff, Status: fixture.StatusScheduled,
	}

	leagueRepo.
		On("GetByID", mock.Anything, "lg-1").
		Return(league.League{ID: "lg-1", OwnerUserID: "owner"}, true, nil).
		Once()
	fixtureRepo.
		On("GetByID", mock.Anything, "lg-1", "fx-1").
		Return(current, true, nil).
		Once()
	teamRepo.
		On("GetByID", mock.Anything, "lg-1", mock.AnythingOfType("string")).
		Return(team.Team{LeagueID: "lg-1"}, true, nil).
		Twice()
	fixtureRepo.
		On("Update", mock.Anything, mock.MatchedBy(func(f fixture.Fixture) bool {
			return f.Status == fixture.StatusFinished && f.HomeScore != nil && *f.HomeScore == 2 && f.Gameweek == 1
		})).
		Return(nil).
		Once()

	home, away, status := 2, 1, "finished"
	got, err := service.UpdateFixture(context.Background(), "owner", "lg-1", "fx-1", UpdateFixtureInput{
		HomeScore: &home,
		AwayScore: &away,
		Status:    &status,
	})
	if err != nil {
		t.Fatalf("update fixture: %v", err)
	}
	if got.Status != fixture.StatusFinished || *got.AwayScore != 1 {
		t.Fatalf("unexpected fixture: %+v", got)
	}
}
