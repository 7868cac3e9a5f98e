package httpapi

import (
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
	"github.com/riskibarqy/league-manager/internal/usecase"
)

type createLeagueRequest struct {
	Name  string   `json:"name" validate:"required,max=100"`
	Teams []string `json:"teams" validate:"required,dive,max=100"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type createFixtureRequest struct {
	Gameweek   int       `json:"gameweek" validate:"required,min=1"`
	HomeTeamID string    `json:"home_team_id" validate:"required"`
	AwayTeamID string    `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	KickoffAt  time.Time `json:"kickoff_at" validate:"required"`
	Venue      string    `json:"venue" validate:"omitempty,max=120"`
	Status     string    `json:"status" validate:"omitempty,max=20"`
}

type updateFixtureRequest struct {
	Gameweek   *int       `json:"gameweek" validate:"omitempty,min=1"`
	HomeTeamID *string    `json:"home_team_id" validate:"omitempty,min=1"`
	AwayTeamID *string    `json:"away_team_id" validate:"omitempty,min=1"`
	KickoffAt  *time.Time `json:"kickoff_at"`
	Venue      *string    `json:"venue" validate:"omitempty,max=120"`
	HomeScore  *int       `json:"home_score" validate:"omitempty,min=0"`
	AwayScore  *int       `json:"away_score" validate:"omitempty,min=0"`
	Status     *string    `json:"status" validate:"omitempty,max=20"`
}

type leagueDTO struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type teamDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
}

type leagueDetailDTO struct {
	leagueDTO
	Teams []teamDTO `json:"teams"`
}

type fixtureDTO struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"league_id"`
	Gameweek   int       `json:"gameweek"`
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	KickoffAt  time.Time `json:"kickoff_at"`
	Venue      string    `json:"venue,omitempty"`
	HomeScore  *int      `json:"home_score,omitempty"`
	AwayScore  *int      `json:"away_score,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func leagueToDTO(item league.League) leagueDTO {
	return leagueDTO{
		ID:          item.ID,
		OwnerUserID: item.OwnerUserID,
		Name:        item.Name,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func leaguesToDTO(items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	return out
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{ID: item.ID, LeagueID: item.LeagueID, Name: item.Name}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func leagueDetailsToDTO(item usecase.LeagueDetails) leagueDetailDTO {
	return leagueDetailDTO{
		leagueDTO: leagueToDTO(item.League),
		Teams:     teamsToDTO(item.Teams),
	}
}

func fixtureToDTO(item fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:         item.ID,
		LeagueID:   item.LeagueID,
		Gameweek:   item.Gameweek,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		KickoffAt:  item.KickoffAt,
		Venue:      item.Venue,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		Status:     item.Status,
		CreatedAt:  item.CreatedAt,
	}
}

func fixturesToDTO(items []fixture.Fixture) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}
	return out
}
