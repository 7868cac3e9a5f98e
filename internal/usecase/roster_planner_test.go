package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
)

func TestPlanRosterOperations_EmptyChangeSet(t *testing.T) {
	if ops := PlanRosterOperations("lg-1", roster.ChangeSet{}); len(ops) != 0 {
		t.Fatalf("expected no operations, got %+v", ops)
	}
}

func TestPlanRosterOperations_OneOperationPerChange(t *testing.T) {
	changes := roster.ChangeSet{
		League:  &roster.NameChange{Old: "Old", New: "New"},
		Renamed: []roster.Rename{{TeamID: "1", OldName: "A", NewName: "A2"}},
		Added:   []roster.Addition{{PlaceholderID: "new-t2", Name: "C"}},
		Deleted: []roster.Deletion{{TeamID: "2"}},
	}

	got := PlanRosterOperations("lg-1", changes)

	want := []roster.Operation{
		{Verb: roster.VerbUpdate, Path: "/v1/leagues/lg-1", Payload: &roster.NamePayload{Name: "New"}},
		{Verb: roster.VerbUpdate, Path: "/v1/leagues/lg-1/teams/1", Payload: &roster.NamePayload{Name: "A2"}},
		{Verb: roster.VerbCreate, Path: "/v1/leagues/lg-1/teams", Payload: &roster.NamePayload{Name: "C"}, PlaceholderID: "new-t2"},
		{Verb: roster.VerbDelete, Path: "/v1/leagues/lg-1/teams/2"},
	}
	sortOps := cmpopts.SortSlices(func(a, b roster.Operation) bool {
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Verb < b.Verb
	})
	if diff := cmp.Diff(want, got, sortOps); diff != "" {
		t.Fatalf("unexpected plan (-want +got):\n%s", diff)
	}
}

func TestPlanRosterOperations_PlaceholderIDNeverInPayloadOrPath(t *testing.T) {
	changes := roster.ChangeSet{Added: []roster.Addition{{PlaceholderID: "new-abc", Name: "D"}}}

	ops := PlanRosterOperations("lg-1", changes)
	if len(ops) != 1 {
		t.Fatalf("expected one operation, got %d", len(ops))
	}
	if ops[0].Path != "/v1/leagues/lg-1/teams" {
		t.Fatalf("unexpected create path: %s", ops[0].Path)
	}
	if ops[0].Payload == nil || ops[0].Payload.Name != "D" {
		t.Fatalf("unexpected payload: %+v", ops[0].Payload)
	}
}

func TestLeagueTeamPath_EscapesIDs(t *testing.T) {
	if got := LeagueTeamPath("lg 1", "a/b"); got != "/v1/leagues/lg%201/teams/a%2Fb" {
		t.Fatalf("unexpected escaped path: %s", got)
	}
}
