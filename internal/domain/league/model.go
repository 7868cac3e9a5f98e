package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("league not found")

// League is a user-owned competition holding a roster of teams.
type League struct {
	ID          string
	OwnerUserID string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.OwnerUserID) == "" {
		return fmt.Errorf("league owner is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

func (l League) OwnedBy(userID string) bool {
	return userID != "" && l.OwnerUserID == userID
}
