package issuebisect

import (
	"strings"
)

// DefaultIssueSuffix is the suffix of all settings holding a list of issues
const DefaultIssueSuffix = "_TEST_ISSUES"

// LineKind classifies a single line of an investigation diff
type LineKind int

const (
	LineIgnored LineKind = iota // The line is not an issue list assignment
	LineRemoved                 // The line holds the value of the last good run
	LineAdded                   // The line holds the value of the regressed run
)

func (k LineKind) String() string {
	switch k {
	case LineRemoved:
		return "removed"
	case LineAdded:
		return "added"
	}
	return "ignored"
}

// A DiffLine is one parsed line of an investigation diff
type DiffLine struct {
	Kind LineKind

	Variable string   // The name of the issue variable. Empty for ignored lines
	Issues   IssueSet // The issues assigned on this line. Nil for ignored lines
}

// A DiffEntry holds both sides of an issue variable found in a diff.
// A nil slot means no line with the corresponding marker was found.
type DiffEntry struct {
	Removed IssueSet // The issues of the last good run
	Added   IssueSet // The issues of the regressed run
}

// ParseDiff parses all issue list assignments out of the passed diff.
// Lines which are not issue list assignments are skipped.
// If a variable appears more than once with the same marker, the last line wins.
func ParseDiff(diff, suffix string) map[string]*DiffEntry {
	entries := make(map[string]*DiffEntry)
	for _, raw := range strings.Split(diff, "\n") {
		line := ParseDiffLine(raw, suffix)
		if line.Kind == LineIgnored {
			continue
		}

		entry, ok := entries[line.Variable]
		if !ok {
			entry = &DiffEntry{}
			entries[line.Variable] = entry
		}
		if line.Kind == LineAdded {
			entry.Added = line.Issues
		} else {
			entry.Removed = line.Issues
		}
	}
	return entries
}

// ParseDiffLine parses a single diff line of the form
//
//	<marker> "<VARIABLE>": "<issue>,<issue>",
//
// where marker is either + or - and VARIABLE ends in suffix.
// Every line not following this form is returned with kind LineIgnored.
func ParseDiffLine(line, suffix string) DiffLine {
	ignored := DiffLine{Kind: LineIgnored}

	line = strings.TrimRight(line, " \t\r")
	if len(line) < 2 {
		return ignored
	}

	var kind LineKind
	switch line[0] {
	case '+':
		kind = LineAdded
	case '-':
		kind = LineRemoved
	default:
		return ignored
	}

	// The marker has to be separated from the key
	rest := line[1:]
	if rest[0] != ' ' && rest[0] != '\t' {
		return ignored
	}

	key, rest, ok := cutQuoted(strings.TrimLeft(rest, " \t"))
	if !ok || !strings.HasSuffix(key, suffix) || key == suffix {
		return ignored
	}

	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " \t"), ":")
	if !ok {
		return ignored
	}

	value, rest, ok := cutQuoted(strings.TrimLeft(rest, " \t"))
	if !ok {
		return ignored
	}

	// At most a trailing comma may follow the value
	if rest = strings.TrimLeft(rest, " \t"); rest != "" && rest != "," {
		return ignored
	}

	return DiffLine{
		Kind:     kind,
		Variable: key,
		Issues:   ParseIssueList(value),
	}
}

// cutQuoted cuts a double quoted string off the start of s.
// It returns the unquoted content, the remainder of s and whether s started with a complete quoted string.
func cutQuoted(s string) (content, rest string, ok bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", s, false
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", s, false
	}
	return s[1 : end+1], s[end+2:], true
}
