package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
)

// TeamService owns roster mutations on the server. It does not enforce a
// minimum roster size: a client batch may delete before it creates.
type TeamService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	teamIDs    idgen.Generator
}

func NewTeamService(leagueRepo league.Repository, teamRepo team.Repository, teamIDs idgen.Generator) *TeamService {
	return &TeamService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		teamIDs:    teamIDs,
	}
}

func (s *TeamService) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListByLeague")
	defer span.End()

	item, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	return teams, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, userID, leagueID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return team.Team{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if err := s.ensureNameAvailable(ctx, item.ID, "", name); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.teamIDs.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	created := team.Team{ID: teamID, LeagueID: item.ID, Name: name}
	if err := s.teamRepo.Create(ctx, created); err != nil {
		if errors.Is(err, team.ErrDuplicateName) {
			return team.Team{}, fmt.Errorf("%w: team name %q already exists in league=%s", ErrConflict, name, item.ID)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return created, nil
}

func (s *TeamService) RenameTeam(ctx context.Context, userID, leagueID, teamID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RenameTeam")
	defer span.End()

	current, err := s.ownedTeam(ctx, userID, leagueID, teamID)
	if err != nil {
		return team.Team{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if err := s.ensureNameAvailable(ctx, current.LeagueID, current.ID, name); err != nil {
		return team.Team{}, err
	}

	if err := s.teamRepo.UpdateName(ctx, current.LeagueID, current.ID, name); err != nil {
		switch {
		case errors.Is(err, team.ErrDuplicateName):
			return team.Team{}, fmt.Errorf("%w: team name %q already exists in league=%s", ErrConflict, name, current.LeagueID)
		case errors.Is(err, team.ErrNotFound):
			return team.Team{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, current.ID, current.LeagueID)
		}
		return team.Team{}, fmt.Errorf("update team name: %w", err)
	}

	current.Name = name
	return current, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, userID, leagueID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	current, err := s.ownedTeam(ctx, userID, leagueID, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.SoftDelete(ctx, current.LeagueID, current.ID); err != nil {
		if errors.Is(err, team.ErrNotFound) {
			return fmt.Errorf("%w: team=%s league=%s", ErrNotFound, current.ID, current.LeagueID)
		}
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}

func (s *TeamService) ownedTeam(ctx context.Context, userID, leagueID, teamID string) (team.Team, error) {
	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return team.Team{}, err
	}

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	current, exists, err := s.teamRepo.GetByID(ctx, item.ID, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s league=%s", ErrNotFound, teamID, item.ID)
	}

	return current, nil
}

func (s *TeamService) ensureNameAvailable(ctx context.Context, leagueID, selfID, name string) error {
	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list teams by league: %w", err)
	}
	for _, t := range teams {
		if t.ID != selfID && team.SameName(t.Name, name) {
			return fmt.Errorf("%w: team name %q already exists in league=%s", ErrConflict, name, leagueID)
		}
	}

	return nil
}
