package issuebisect

import (
	"slices"
	"strings"
)

// An IssueSet is a set of issue identifiers. Membership is exact and case-sensitive.
type IssueSet map[string]struct{}

// NewIssueSet returns a set holding the passed issues
func NewIssueSet(issues ...string) IssueSet {
	s := make(IssueSet, len(issues))
	for _, issue := range issues {
		s[issue] = struct{}{}
	}
	return s
}

// ParseIssueList splits a comma separated issue list into a set.
// An empty list results in the set containing the empty string, not in an empty set.
func ParseIssueList(list string) IssueSet {
	return NewIssueSet(strings.Split(list, ",")...)
}

// Contains reports whether issue is part of the set
func (s IssueSet) Contains(issue string) bool {
	_, ok := s[issue]
	return ok
}

// Minus returns a new set with all issues of s which are not in other
func (s IssueSet) Minus(other IssueSet) IssueSet {
	res := make(IssueSet)
	for issue := range s {
		if !other.Contains(issue) {
			res[issue] = struct{}{}
		}
	}
	return res
}

// Without returns a copy of s with issue removed
func (s IssueSet) Without(issue string) IssueSet {
	return s.Minus(NewIssueSet(issue))
}

// Equal reports whether both sets contain the same issues
func (s IssueSet) Equal(other IssueSet) bool {
	if len(s) != len(other) {
		return false
	}
	for issue := range s {
		if !other.Contains(issue) {
			return false
		}
	}
	return true
}

// Sorted returns the issues in lexicographically ascending order
func (s IssueSet) Sorted() []string {
	issues := make([]string, 0, len(s))
	for issue := range s {
		issues = append(issues, issue)
	}
	slices.Sort(issues)
	return issues
}

// Join returns the sorted issues joined by commas, the format used in job settings
func (s IssueSet) Join() string {
	return strings.Join(s.Sorted(), ",")
}
