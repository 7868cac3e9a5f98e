package roster

import (
	"errors"
	"fmt"
	"strings"
)

const MinTeams = 2

var (
	ErrTooFewTeams     = errors.New("roster needs at least two teams")
	ErrEmptyTeamName   = errors.New("team name is required")
	ErrEmptyLeagueName = errors.New("league name is required")
)

// Validate reports whether a snapshot may be saved at all.
func Validate(s Snapshot) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyLeagueName
	}
	if len(s.Teams) < MinTeams {
		return fmt.Errorf("%w: have %d", ErrTooFewTeams, len(s.Teams))
	}
	for i, t := range s.Teams {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: team at index %d", ErrEmptyTeamName, i)
		}
	}
	return nil
}
