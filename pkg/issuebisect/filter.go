package issuebisect

import "slices"

// An IssueVariableChange is a change of an issue variable between the last good and the regressed run
type IssueVariableChange struct {
	Name string // The name of the issue variable

	Good IssueSet // The issues of the last good run
	Bad  IssueSet // The issues of the regressed run
}

// Added returns the issues which were newly introduced in the regressed run
func (c IssueVariableChange) Added() IssueSet {
	return c.Bad.Minus(c.Good)
}

// Removed returns the issues which were dropped in the regressed run
func (c IssueVariableChange) Removed() IssueSet {
	return c.Good.Minus(c.Bad)
}

// FilterChanges returns the changes worth bisecting out of the parsed diff entries.
// Variables only present on one side, variables whose bad side holds at most one issue and variables which didn't gain
// any issues are dropped. The passed map is not modified.
func FilterChanges(entries map[string]*DiffEntry) map[string]IssueVariableChange {
	changes := make(map[string]IssueVariableChange)
	for name, entry := range entries {
		if entry == nil || entry.Added == nil || entry.Removed == nil {
			continue
		}
		if len(entry.Added) <= 1 {
			continue
		}

		change := IssueVariableChange{
			Name: name,
			Good: entry.Removed,
			Bad:  entry.Added,
		}
		if len(change.Added()) == 0 {
			continue
		}
		changes[name] = change
	}
	return changes
}

// SortedChangeNames returns the variable names of the passed changes in ascending order
func SortedChangeNames(changes map[string]IssueVariableChange) []string {
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
