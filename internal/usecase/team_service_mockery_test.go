package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	leaguemock "github.com/riskibarqy/league-manager/internal/mocks/domain/league"
	teammock "github.com/riskibarqy/league-manager/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func ownedLeague(repo *leaguemock.Repository) {
	repo.
		On("GetByID", mock.Anything, "lg-1").
		Return(league.League{ID: "lg-1", OwnerUserID: "owner", Name: "Sunday"}, true, nil).
		Once()
}

func TestTeamService_CreateTeam_ReturnsGeneratedID(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(leagueRepo, teamRepo, &sequenceIDs{next: []string{"tm-9"}})

	ownedLeague(leagueRepo)
	teamRepo.
		On("ListByLeague", mock.Anything, "lg-1").
		Return([]team.Team{{ID: "tm-1", LeagueID: "lg-1", Name: "Reds"}}, nil).
		Once()
	teamRepo.
		On("Create", mock.Anything, team.Team{ID: "tm-9", LeagueID: "lg-1", Name: "Greens"}).
		Return(nil).
		Once()

	got, err := service.CreateTeam(context.Background(), "owner", "lg-1", " Greens ")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.ID != "tm-9" {
		t.Fatalf("unexpected team id: %s", got.ID)
	}
}

func TestTeamService_CreateTeam_DuplicateNameConflicts(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(leagueRepo, teamRepo, &sequenceIDs{next: []string{"tm-9"}})

	ownedLeague(leagueRepo)
	teamRepo.
		On("ListByLeague", mock.Anything, "lg-1").
		Return([]team.Team{{ID: "tm-1", LeagueID: "lg-1", Name: "Reds"}}, nil).
		Once()

	_, err := service.CreateTeam(context.Background(), "owner", "lg-1", "REDS")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTeamService_RenameTeam_KeepsOwnNameAvailable(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(leagueRepo, teamRepo, nil)

	ownedLeague(leagueRepo)
	teamRepo.
		On("GetByID", mock.Anything, "lg-1", "tm-1").
		Return(team.Team{ID: "tm-1", LeagueID: "lg-1", Name: "Reds"}, true, nil).
		Once()
	teamRepo.
		On("ListByLeague", mock.Anything, "lg-1").
		Return([]team.Team{{ID: "tm-1", LeagueID: "lg-1", Name: "Reds"}}, nil).
		Once()
	teamRepo.
		On("UpdateName", mock.Anything, "lg-1", "tm-1", "reds").
		Return(nil).
		Once()

	got, err := service.RenameTeam(context.Background(), "owner", "lg-1", "tm-1", "reds")
	if err != nil {
		t.Fatalf("rename team: %v", err)
	}
	if got.Name != "reds" {
		t.Fatalf("unexpected name: %s", got.Name)
	}
}

func TestTeamService_DeleteTeam_UnknownTeam(t *testing.T) {
	t.Parallel()

	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(leagueRepo, teamRepo, nil)

	ownedLeague(leagueRepo)
	teamRepo.
		On("GetByID", mock.Anything, "lg-1", "tm-x").
		Return(team.Team{}, false, nil).
		Once()

	err := service.DeleteTeam(context.Background(), "owner", "lg-1", "tm-x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_DeleteTeam_RequiresAuthenticatedUser(t *testing.T) {
	t.Parallel()

	service := NewTeamService(leaguemock.NewRepository(t), teammock.NewRepository(t), nil)
	if err := service.DeleteTeam(context.Background(), " ", "lg-1", "tm-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
