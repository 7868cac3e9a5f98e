package team

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("team not found")
	ErrDuplicateName = errors.New("team name already used in league")
)

// Team is one entry of a league roster.
type Team struct {
	ID       string
	LeagueID string
	Name     string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.LeagueID) == "" {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// SameName compares team names the way the per-league uniqueness index does.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
