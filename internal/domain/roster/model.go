package roster

import (
	"errors"
	"fmt"
	"strings"
)

// PlaceholderPrefix marks ids minted locally for teams that do not exist remotely yet.
const PlaceholderPrefix = "new-"

var ErrIndexOutOfRange = errors.New("team index out of range")

// Team is one roster entry. Placeholder teams carry a local id that is never sent remotely.
type Team struct {
	ID          string
	Name        string
	Placeholder bool
}

// Roster is ordered by insertion; order matters for index-based editing only.
type Roster []Team

func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

func (r Roster) IndexOf(teamID string) int {
	for i, t := range r {
		if t.ID == teamID {
			return i
		}
	}
	return -1
}

// Snapshot is a league name plus its roster, the unit the diff works on.
type Snapshot struct {
	LeagueID string
	Name     string
	Teams    Roster
}

func (s Snapshot) Clone() Snapshot {
	s.Teams = s.Teams.Clone()
	return s
}

func (s *Snapshot) RenameTeam(index int, name string) error {
	if index < 0 || index >= len(s.Teams) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.Teams))
	}
	s.Teams[index].Name = name
	return nil
}

func (s *Snapshot) DeleteTeam(index int) (Team, error) {
	if index < 0 || index >= len(s.Teams) {
		return Team{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(s.Teams))
	}
	removed := s.Teams[index]
	s.Teams = append(s.Teams[:index:index], s.Teams[index+1:]...)
	return removed, nil
}

func (s *Snapshot) AddPlaceholder(placeholderID string) (Team, error) {
	if !strings.HasPrefix(placeholderID, PlaceholderPrefix) {
		return Team{}, fmt.Errorf("placeholder id %q must start with %q", placeholderID, PlaceholderPrefix)
	}
	if s.Teams.IndexOf(placeholderID) >= 0 {
		return Team{}, fmt.Errorf("placeholder id %q already used", placeholderID)
	}
	t := Team{ID: placeholderID, Placeholder: true}
	s.Teams = append(s.Teams, t)
	return t, nil
}

// ResolvePlaceholders swaps placeholder ids for the ids assigned remotely.
// Placeholders missing from assigned are left untouched.
func (s *Snapshot) ResolvePlaceholders(assigned map[string]string) {
	if len(assigned) == 0 {
		return
	}
	for i, t := range s.Teams {
		if !t.Placeholder {
			continue
		}
		if realID, ok := assigned[t.ID]; ok && realID != "" {
			s.Teams[i] = Team{ID: realID, Name: t.Name}
		}
	}
}
