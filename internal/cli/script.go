package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/riskibarqy/league-manager/internal/domain/roster"
	"gopkg.in/yaml.v3"
)

// EditScript is a batch of roster edits. Indexes refer to the roster as loaded.
//
//	rename_league: Sunday League
//	rename:
//	  - {index: 0, name: Rovers}
//	delete: [2]
//	add: [Dockside]
type EditScript struct {
	RenameLeague *string      `yaml:"rename_league"`
	Rename       []TeamRename `yaml:"rename"`
	Delete       []int        `yaml:"delete"`
	Add          []string     `yaml:"add"`
}

type TeamRename struct {
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`
}

// RosterEditing is the part of the roster editor a script drives.
type RosterEditing interface {
	RenameLeague(name string) error
	RenameTeam(index int, name string) error
	DeleteTeam(index int) error
	AddPlaceholderTeam() (roster.Team, error)
	Edited() roster.Snapshot
}

var errEmptyScript = errors.New("edit script has no edits")

func LoadEditScript(path string) (EditScript, error) {
	f, err := os.Open(path)
	if err != nil {
		return EditScript{}, fmt.Errorf("open edit script: %w", err)
	}
	defer f.Close()

	return ParseEditScript(f)
}

func ParseEditScript(r io.Reader) (EditScript, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var script EditScript
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return EditScript{}, errEmptyScript
		}
		return EditScript{}, fmt.Errorf("decode edit script: %w", err)
	}
	if err := script.validate(); err != nil {
		return EditScript{}, err
	}

	return script, nil
}

func (s EditScript) validate() error {
	if s.RenameLeague == nil && len(s.Rename) == 0 && len(s.Delete) == 0 && len(s.Add) == 0 {
		return errEmptyScript
	}

	deleted := make(map[int]struct{}, len(s.Delete))
	for _, idx := range s.Delete {
		if _, dup := deleted[idx]; dup {
			return fmt.Errorf("team %d is deleted twice", idx)
		}
		deleted[idx] = struct{}{}
	}
	renamed := make(map[int]struct{}, len(s.Rename))
	for _, r := range s.Rename {
		if _, gone := deleted[r.Index]; gone {
			return fmt.Errorf("team %d is both renamed and deleted", r.Index)
		}
		if _, dup := renamed[r.Index]; dup {
			return fmt.Errorf("team %d is renamed twice", r.Index)
		}
		renamed[r.Index] = struct{}{}
	}

	return nil
}

// Apply runs renames, then deletes from the highest index down, then adds, so
// every index keeps pointing at the team it named in the loaded roster.
func (s EditScript) Apply(editor RosterEditing) error {
	if s.RenameLeague != nil {
		if err := editor.RenameLeague(strings.TrimSpace(*s.RenameLeague)); err != nil {
			return fmt.Errorf("rename league: %w", err)
		}
	}

	for _, r := range s.Rename {
		if err := editor.RenameTeam(r.Index, strings.TrimSpace(r.Name)); err != nil {
			return fmt.Errorf("rename team %d: %w", r.Index, err)
		}
	}

	deletes := slices.Clone(s.Delete)
	slices.SortFunc(deletes, func(a, b int) int { return b - a })
	for _, idx := range deletes {
		if err := editor.DeleteTeam(idx); err != nil {
			return fmt.Errorf("delete team %d: %w", idx, err)
		}
	}

	for _, name := range s.Add {
		placeholder, err := editor.AddPlaceholderTeam()
		if err != nil {
			return fmt.Errorf("add team %q: %w", name, err)
		}
		idx := editor.Edited().Teams.IndexOf(placeholder.ID)
		if err := editor.RenameTeam(idx, strings.TrimSpace(name)); err != nil {
			return fmt.Errorf("name new team %q: %w", name, err)
		}
	}

	return nil
}
