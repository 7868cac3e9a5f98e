package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_PrefixAndUniqueness(t *testing.T) {
	gen := NewUUIDGenerator("tm-")

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if first == second {
		t.Fatalf("expected unique ids, got %q twice", first)
	}
	if !strings.HasPrefix(first, "tm-") {
		t.Fatalf("expected tm- prefix, got %q", first)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(first, "tm-")); err != nil {
		t.Fatalf("expected uuid body, got %q: %v", first, err)
	}
}
