package memory

import (
	"time"

	"github.com/riskibarqy/league-manager/internal/domain/fixture"
	"github.com/riskibarqy/league-manager/internal/domain/league"
	"github.com/riskibarqy/league-manager/internal/domain/team"
)

const (
	LeagueIDSundayFive = "lg-sunday-five"
	LeagueIDOfficeCup  = "lg-office-cup"

	SeedOwnerUserID = "user-demo"
)

func SeedLeagues() []league.League {
	created := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return []league.League{
		{ID: LeagueIDSundayFive, OwnerUserID: SeedOwnerUserID, Name: "Sunday Five-a-side", CreatedAt: created, UpdatedAt: created},
		{ID: LeagueIDOfficeCup, OwnerUserID: SeedOwnerUserID, Name: "Office Cup", CreatedAt: created, UpdatedAt: created},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "tm-rovers", LeagueID: LeagueIDSundayFive, Name: "Riverside Rovers"},
		{ID: "tm-athletic", LeagueID: LeagueIDSundayFive, Name: "Park Lane Athletic"},
		{ID: "tm-united", LeagueID: LeagueIDSundayFive, Name: "Hill Street United"},
		{ID: "tm-finance", LeagueID: LeagueIDOfficeCup, Name: "Finance"},
		{ID: "tm-platform", LeagueID: LeagueIDOfficeCup, Name: "Platform"},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID:         "fx-sunday-gw1-1",
			LeagueID:   LeagueIDSundayFive,
			Gameweek:   1,
			HomeTeamID: "tm-rovers",
			AwayTeamID: "tm-athletic",
			KickoffAt:  time.Date(2026, 10, 4, 9, 0, 0, 0, time.UTC),
			Venue:      "Riverside Pitch 2",
			Status:     fixture.StatusScheduled,
		},
		{
			ID:         "fx-office-gw1-1",
			LeagueID:   LeagueIDOfficeCup,
			Gameweek:   1,
			HomeTeamID: "tm-finance",
			AwayTeamID: "tm-platform",
			KickoffAt:  time.Date(2026, 10, 8, 18, 30, 0, 0, time.UTC),
			Status:     fixture.StatusScheduled,
		},
	}
}
