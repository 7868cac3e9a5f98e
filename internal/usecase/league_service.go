package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
)

type LeagueDetails struct {
	League league.League
	Teams  []team.Team
}

type CreateLeagueInput struct {
	OwnerUserID string
	Name        string
	TeamNames   []string
}

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	leagueIDs  idgen.Generator
	teamIDs    idgen.Generator
	logger     *logging.Logger
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	leagueIDs idgen.Generator,
	teamIDs idgen.Generator,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		leagueIDs:  leagueIDs,
		teamIDs:    teamIDs,
		logger:     logger,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) ListMyLeagues(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMyLeagues")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	leagues, err := s.leagueRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by owner: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (LeagueDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	item, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return LeagueDetails{}, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return LeagueDetails{}, fmt.Errorf("list teams by league: %w", err)
	}

	return LeagueDetails{League: item, Teams: teams}, nil
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (LeagueDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	ownerID := strings.TrimSpace(input.OwnerUserID)
	if ownerID == "" {
		return LeagueDetails{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return LeagueDetails{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}
	teamNames, err := normalizeTeamNames(input.TeamNames)
	if err != nil {
		return LeagueDetails{}, err
	}

	leagueID, err := s.leagueIDs.NewID()
	if err != nil {
		return LeagueDetails{}, fmt.Errorf("generate league id: %w", err)
	}
	item := league.League{ID: leagueID, OwnerUserID: ownerID, Name: name}
	if err := item.Validate(); err != nil {
		return LeagueDetails{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return LeagueDetails{}, fmt.Errorf("create league: %w", err)
	}

	teams := make([]team.Team, 0, len(teamNames))
	for _, teamName := range teamNames {
		teamID, err := s.teamIDs.NewID()
		if err != nil {
			return LeagueDetails{}, fmt.Errorf("generate team id: %w", err)
		}
		t := team.Team{ID: teamID, LeagueID: leagueID, Name: teamName}
		if err := s.teamRepo.Create(ctx, t); err != nil {
			return LeagueDetails{}, fmt.Errorf("create team %q: %w", teamName, err)
		}
		teams = append(teams, t)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", leagueID,
		"owner_user_id", ownerID,
		"team_count", len(teams),
	)

	created, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueDetails{}, fmt.Errorf("reload league: %w", err)
	}
	if exists {
		item = created
	}

	return LeagueDetails{League: item, Teams: teams}, nil
}

func (s *LeagueService) RenameLeague(ctx context.Context, userID, leagueID, name string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RenameLeague")
	defer span.End()

	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return league.League{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	if err := s.leagueRepo.UpdateName(ctx, item.ID, name); err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, item.ID)
		}
		return league.League{}, fmt.Errorf("update league name: %w", err)
	}

	item.Name = name
	return item, nil
}

// DeleteLeague soft deletes the league and its teams.
func (s *LeagueService) DeleteLeague(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.DeleteLeague")
	defer span.End()

	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.SoftDeleteByLeague(ctx, item.ID); err != nil {
		return fmt.Errorf("delete league teams: %w", err)
	}
	if err := s.leagueRepo.SoftDelete(ctx, item.ID); err != nil {
		if errors.Is(err, league.ErrNotFound) {
			return fmt.Errorf("%w: league=%s", ErrNotFound, item.ID)
		}
		return fmt.Errorf("delete league: %w", err)
	}

	s.logger.InfoContext(ctx, "league deleted", "league_id", item.ID, "owner_user_id", item.OwnerUserID)
	return nil
}

func normalizeTeamNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: team name at index %d is required", ErrInvalidInput, i)
		}
		for _, existing := range out {
			if team.SameName(existing, name) {
				return nil, fmt.Errorf("%w: duplicate team name %q", ErrInvalidInput, name)
			}
		}
		out = append(out, name)
	}
	if len(out) < roster.MinTeams {
		return nil, fmt.Errorf("%w: league needs at least %d teams", ErrInvalidInput, roster.MinTeams)
	}

	return out, nil
}
