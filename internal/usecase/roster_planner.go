package usecase

import (
	"net/url"

	"github.com/riskibarqy/league-manager/internal/domain/roster"
)

func LeaguePath(leagueID string) string {
	return "/v1/leagues/" + url.PathEscape(leagueID)
}

func LeagueTeamsPath(leagueID string) string {
	return LeaguePath(leagueID) + "/teams"
}

func LeagueTeamPath(leagueID, teamID string) string {
	return LeagueTeamsPath(leagueID) + "/" + url.PathEscape(teamID)
}

// PlanRosterOperations turns a change set into independent remote operations.
// The slice order carries no meaning; each operation applies on its own.
func PlanRosterOperations(leagueID string, changes roster.ChangeSet) []roster.Operation {
	ops := make([]roster.Operation, 0, changes.Size())

	if changes.League != nil {
		ops = append(ops, roster.Operation{
			Verb:    roster.VerbUpdate,
			Path:    LeaguePath(leagueID),
			Payload: &roster.NamePayload{Name: changes.League.New},
		})
	}
	for _, r := range changes.Renamed {
		ops = append(ops, roster.Operation{
			Verb:    roster.VerbUpdate,
			Path:    LeagueTeamPath(leagueID, r.TeamID),
			Payload: &roster.NamePayload{Name: r.NewName},
		})
	}
	for _, a := range changes.Added {
		ops = append(ops, roster.Operation{
			Verb:          roster.VerbCreate,
			Path:          LeagueTeamsPath(leagueID),
			Payload:       &roster.NamePayload{Name: a.Name},
			PlaceholderID: a.PlaceholderID,
		})
	}
	for _, d := range changes.Deleted {
		ops = append(ops, roster.Operation{
			Verb: roster.VerbDelete,
			Path: LeagueTeamPath(leagueID, d.TeamID),
		})
	}

	return ops
}
