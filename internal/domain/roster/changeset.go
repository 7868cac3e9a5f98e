package roster

type NameChange struct {
	Old string
	New string
}

type Rename struct {
	TeamID  string
	OldName string
	NewName string
}

type Addition struct {
	PlaceholderID string
	Name          string
}

type Deletion struct {
	TeamID string
}

// ChangeSet is derived on every save attempt and never persisted.
type ChangeSet struct {
	League  *NameChange
	Renamed []Rename
	Added   []Addition
	Deleted []Deletion
}

func (c ChangeSet) IsEmpty() bool {
	return c.League == nil && len(c.Renamed) == 0 && len(c.Added) == 0 && len(c.Deleted) == 0
}

// Size is the number of remote operations the change set plans into.
func (c ChangeSet) Size() int {
	n := len(c.Renamed) + len(c.Added) + len(c.Deleted)
	if c.League != nil {
		n++
	}
	return n
}
