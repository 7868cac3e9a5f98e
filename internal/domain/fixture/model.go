package fixture

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

var ErrNotFound = errors.New("fixture not found")

// Fixture is one scheduled match between two teams of the same league.
type Fixture struct {
	ID         string
	LeagueID   string
	Gameweek   int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Venue      string
	HomeScore  *int
	AwayScore  *int
	Status     string
	CreatedAt  time.Time
}

// Validate checks the fixture on its own; team membership is checked by the caller.
func (f Fixture) Validate() error {
	if strings.TrimSpace(f.LeagueID) == "" {
		return fmt.Errorf("fixture league id is required")
	}
	if f.Gameweek < 1 {
		return fmt.Errorf("fixture gameweek must be >= 1")
	}
	if strings.TrimSpace(f.HomeTeamID) == "" || strings.TrimSpace(f.AwayTeamID) == "" {
		return fmt.Errorf("fixture home and away teams are required")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture home and away teams must differ")
	}
	if f.KickoffAt.IsZero() {
		return fmt.Errorf("fixture kickoff time is required")
	}
	if !IsKnownStatus(f.Status) {
		return fmt.Errorf("fixture status %q is not supported", f.Status)
	}
	if (f.HomeScore == nil) != (f.AwayScore == nil) {
		return fmt.Errorf("fixture scores must be set together")
	}
	if f.HomeScore != nil && (*f.HomeScore < 0 || *f.AwayScore < 0) {
		return fmt.Errorf("fixture scores must be >= 0")
	}

	return nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsKnownStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusLive, StatusFinished, StatusCancelled, StatusPostponed:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed:
		return true
	default:
		return false
	}
}
