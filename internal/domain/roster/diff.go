package roster

// Diff compares an edited snapshot against the baseline it was derived from.
//
// Teams are aligned by id rather than by position, so reordering the edited
// roster never turns into spurious renames. Renames and deletions follow the
// original order; additions follow the edited order. Persisted ids present in
// edited but unknown to original have no remote operation and are ignored.
// Diff does not validate; see Validate.
func Diff(original, edited Snapshot) ChangeSet {
	var out ChangeSet

	if original.Name != edited.Name {
		out.League = &NameChange{Old: original.Name, New: edited.Name}
	}

	editedByID := make(map[string]Team, len(edited.Teams))
	for _, t := range edited.Teams {
		if t.Placeholder {
			out.Added = append(out.Added, Addition{PlaceholderID: t.ID, Name: t.Name})
			continue
		}
		editedByID[t.ID] = t
	}

	for _, t := range original.Teams {
		current, ok := editedByID[t.ID]
		if !ok {
			out.Deleted = append(out.Deleted, Deletion{TeamID: t.ID})
			continue
		}
		if current.Name != t.Name {
			out.Renamed = append(out.Renamed, Rename{TeamID: t.ID, OldName: t.Name, NewName: current.Name})
		}
	}

	return out
}
