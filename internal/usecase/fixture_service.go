package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	idgen "github.com/riskibarqy/league-manager/internal/platform/id"
)

type CreateFixtureInput struct {
	Gameweek   int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Venue      string
	Status     string
}

// UpdateFixtureInput is a partial update; nil fields keep their current value.
type UpdateFixtureInput struct {
	Gameweek   *int
	HomeTeamID *string
	AwayTeamID *string
	KickoffAt  *time.Time
	Venue      *string
	HomeScore  *int
	AwayScore  *int
	Status     *string
}

type FixtureService struct {
	leagueRepo  league.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	fixtureIDs  idgen.Generator
}

func NewFixtureService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	fixtureIDs idgen.Generator,
) *FixtureService {
	return &FixtureService{
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		fixtureIDs:  fixtureIDs,
	}
}

func (s *FixtureService) ListByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByLeague")
	defer span.End()

	item, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByLeague(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}

	return fixtures, nil
}

func (s *FixtureService) GetFixture(ctx context.Context, leagueID, fixtureID string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetFixture")
	defer span.End()

	item, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	return s.getFixture(ctx, item.ID, fixtureID)
}

func (s *FixtureService) CreateFixture(ctx context.Context, userID, leagueID string, input CreateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.CreateFixture")
	defer span.End()

	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	fixtureID, err := s.fixtureIDs.NewID()
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
	}
	created := fixture.Fixture{
		ID:         fixtureID,
		LeagueID:   item.ID,
		Gameweek:   input.Gameweek,
		HomeTeamID: strings.TrimSpace(input.HomeTeamID),
		AwayTeamID: strings.TrimSpace(input.AwayTeamID),
		KickoffAt:  input.KickoffAt.UTC(),
		Venue:      strings.TrimSpace(input.Venue),
		Status:     fixture.NormalizeStatus(input.Status),
	}
	if err := s.validate(ctx, created); err != nil {
		return fixture.Fixture{}, err
	}

	if err := s.fixtureRepo.Create(ctx, created); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	return created, nil
}

func (s *FixtureService) UpdateFixture(ctx context.Context, userID, leagueID, fixtureID string, input UpdateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateFixture")
	defer span.End()

	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return fixture.Fixture{}, err
	}
	current, err := s.getFixture(ctx, item.ID, fixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	updated := applyFixtureUpdate(current, input)
	if err := s.validate(ctx, updated); err != nil {
		return fixture.Fixture{}, err
	}

	if err := s.fixtureRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, fixture.ErrNotFound) {
			return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s league=%s", ErrNotFound, current.ID, item.ID)
		}
		return fixture.Fixture{}, fmt.Errorf("update fixture: %w", err)
	}

	return updated, nil
}

func (s *FixtureService) DeleteFixture(ctx context.Context, userID, leagueID, fixtureID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.DeleteFixture")
	defer span.End()

	item, err := requireLeagueOwner(ctx, s.leagueRepo, userID, leagueID)
	if err != nil {
		return err
	}
	current, err := s.getFixture(ctx, item.ID, fixtureID)
	if err != nil {
		return err
	}

	if err := s.fixtureRepo.SoftDelete(ctx, item.ID, current.ID); err != nil {
		if errors.Is(err, fixture.ErrNotFound) {
			return fmt.Errorf("%w: fixture=%s league=%s", ErrNotFound, current.ID, item.ID)
		}
		return fmt.Errorf("delete fixture: %w", err)
	}

	return nil
}

func (s *FixtureService) getFixture(ctx context.Context, leagueID, fixtureID string) (fixture.Fixture, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, leagueID, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s league=%s", ErrNotFound, fixtureID, leagueID)
	}

	return item, nil
}

// validate checks the fixture itself and that both sides play in its league.
func (s *FixtureService) validate(ctx context.Context, item fixture.Fixture) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, teamID := range []string{item.HomeTeamID, item.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, item.LeagueID, teamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s is not part of league=%s", ErrInvalidInput, teamID, item.LeagueID)
		}
	}

	return nil
}

func applyFixtureUpdate(current fixture.Fixture, input UpdateFixtureInput) fixture.Fixture {
	if input.Gameweek != nil {
		current.Gameweek = *input.Gameweek
	}
	if input.HomeTeamID != nil {
		current.HomeTeamID = strings.TrimSpace(*input.HomeTeamID)
	}
	if input.AwayTeamID != nil {
		current.AwayTeamID = strings.TrimSpace(*input.AwayTeamID)
	}
	if input.KickoffAt != nil {
		current.KickoffAt = input.KickoffAt.UTC()
	}
	if input.Venue != nil {
		current.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.HomeScore != nil {
		score := *input.HomeScore
		current.HomeScore = &score
	}
	if input.AwayScore != nil {
		score := *input.AwayScore
		current.AwayScore = &score
	}
	if input.Status != nil {
		current.Status = fixture.NormalizeStatus(*input.Status)
	}

	return current
}
