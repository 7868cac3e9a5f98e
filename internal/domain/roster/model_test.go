package roster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshot_EditsDoNotLeakIntoClones(t *testing.T) {
	original := baseline()
	working := original.Clone()

	if err := working.RenameTeam(0, "Renamed"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := working.DeleteTeam(1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if diff := cmp.Diff(baseline(), original); diff != "" {
		t.Fatalf("baseline changed through clone:\n%s", diff)
	}
}

func TestSnapshot_IndexOutOfRange(t *testing.T) {
	s := baseline()
	if err := s.RenameTeam(2, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := s.DeleteTeam(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSnapshot_AddPlaceholder(t *testing.T) {
	s := baseline()
	team, err := s.AddPlaceholder("new-1")
	if err != nil {
		t.Fatalf("add placeholder: %v", err)
	}
	if !team.Placeholder || team.Name != "" {
		t.Fatalf("unexpected placeholder team: %+v", team)
	}
	if len(s.Teams) != 3 {
		t.Fatalf("expected placeholder appended, got %d teams", len(s.Teams))
	}
	if _, err := s.AddPlaceholder("new-1"); err == nil {
		t.Fatalf("expected duplicate placeholder id to be rejected")
	}
	if _, err := s.AddPlaceholder("tm-9"); err == nil {
		t.Fatalf("expected non-prefixed id to be rejected")
	}
}

func TestSnapshot_ResolvePlaceholders(t *testing.T) {
	s := Snapshot{Teams: Roster{
		{ID: "1", Name: "A"},
		{ID: "new-a", Name: "C", Placeholder: true},
		{ID: "new-b", Name: "D", Placeholder: true},
	}}

	s.ResolvePlaceholders(map[string]string{"new-a": "tm-77"})

	want := Roster{
		{ID: "1", Name: "A"},
		{ID: "tm-77", Name: "C"},
		{ID: "new-b", Name: "D", Placeholder: true},
	}
	if diff := cmp.Diff(want, s.Teams); diff != "" {
		t.Fatalf("unexpected roster (-want +got):\n%s", diff)
	}
}

func TestBatchOutcome_CreatedIDsAndFailed(t *testing.T) {
	outcome := BatchOutcome{Outcomes: []OperationOutcome{
		{Operation: Operation{Verb: VerbCreate, PlaceholderID: "new-a"}, Succeeded: true, CreatedID: "tm-1"},
		{Operation: Operation{Verb: VerbCreate, PlaceholderID: "new-b"}, Succeeded: false, Err: errors.New("boom")},
		{Operation: Operation{Verb: VerbUpdate, Path: "/v1/leagues/lg-1"}, Succeeded: true},
	}}

	if diff := cmp.Diff(map[string]string{"new-a": "tm-1"}, outcome.CreatedIDs()); diff != "" {
		t.Fatalf("unexpected created ids:\n%s", diff)
	}
	if failed := outcome.Failed(); len(failed) != 1 || failed[0].Operation.PlaceholderID != "new-b" {
		t.Fatalf("unexpected failed outcomes: %+v", failed)
	}
}
