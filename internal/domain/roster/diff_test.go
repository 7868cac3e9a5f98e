package roster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func baseline() Snapshot {
	return Snapshot{
		LeagueID: "lg-1",
		Name:     "Sunday League",
		Teams: Roster{
			{ID: "1", Name: "A"},
			{ID: "2", Name: "B"},
		},
	}
}

func TestDiff_IdenticalSnapshotsAreEmpty(t *testing.T) {
	got := Diff(baseline(), baseline())
	if !got.IsEmpty() {
		t.Fatalf("expected empty change set, got %+v", got)
	}
	if got.Size() != 0 {
		t.Fatalf("expected size 0, got %d", got.Size())
	}
}

func TestDiff_RenameAddDelete(t *testing.T) {
	edited := baseline().Clone()
	edited.Teams[0].Name = "A2"
	if _, err := edited.DeleteTeam(1); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	edited.Teams = append(edited.Teams, Team{ID: "new-t2", Name: "C", Placeholder: true})

	want := ChangeSet{
		Renamed: []Rename{{TeamID: "1", OldName: "A", NewName: "A2"}},
		Added:   []Addition{{PlaceholderID: "new-t2", Name: "C"}},
		Deleted: []Deletion{{TeamID: "2"}},
	}
	if diff := cmp.Diff(want, Diff(baseline(), edited)); diff != "" {
		t.Fatalf("unexpected change set (-want +got):\n%s", diff)
	}
}

func TestDiff_LeagueRenameIsImplicitChange(t *testing.T) {
	edited := baseline()
	edited.Name = "Saturday League"

	got := Diff(baseline(), edited)
	want := ChangeSet{League: &NameChange{Old: "Sunday League", New: "Saturday League"}}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("unexpected change set (-want +got):\n%s", diff)
	}
	if got.Size() != 1 {
		t.Fatalf("expected one planned operation, got %d", got.Size())
	}
}

func TestDiff_SinglePlaceholderIsOnlyAddition(t *testing.T) {
	edited := baseline().Clone()
	edited.Teams = append(edited.Teams, Team{ID: "new-x", Name: "D", Placeholder: true})

	got := Diff(baseline(), edited)
	if len(got.Added) != 1 || got.Added[0].PlaceholderID != "new-x" {
		t.Fatalf("expected one addition, got %+v", got.Added)
	}
	if len(got.Renamed) != 0 || len(got.Deleted) != 0 {
		t.Fatalf("expected no renames or deletions, got %+v", got)
	}
}

func TestDiff_ReorderIsNotARename(t *testing.T) {
	edited := baseline().Clone()
	edited.Teams[0], edited.Teams[1] = edited.Teams[1], edited.Teams[0]

	if got := Diff(baseline(), edited); !got.IsEmpty() {
		t.Fatalf("expected reorder to produce no changes, got %+v", got)
	}
}

func TestDiff_EveryMissingIDIsDeletedOnceInOriginalOrder(t *testing.T) {
	original := Snapshot{Name: "L", Teams: Roster{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}}}
	edited := Snapshot{Name: "L", Teams: Roster{{ID: "2", Name: "B"}}}

	want := []Deletion{{TeamID: "1"}, {TeamID: "3"}}
	if diff := cmp.Diff(want, Diff(original, edited).Deleted); diff != "" {
		t.Fatalf("unexpected deletions (-want +got):\n%s", diff)
	}
}

func TestDiff_DoesNotMutateInputs(t *testing.T) {
	original := baseline()
	edited := baseline().Clone()
	edited.Teams[1].Name = "B2"
	before := edited.Clone()

	_ = Diff(original, edited)

	if diff := cmp.Diff(baseline(), original); diff != "" {
		t.Fatalf("original mutated:\n%s", diff)
	}
	if diff := cmp.Diff(before, edited); diff != "" {
		t.Fatalf("edited mutated:\n%s", diff)
	}
}
