package issuebisect

import (
	"fmt"
	"strings"

	_ "crypto/sha256"

	"github.com/opencontainers/go-digest"
)

// bisectTestInfix separates the original test name from the held back issue
const bisectTestInfix = investigateMarker + "bisect_without_"

// A BisectionPlanEntry describes a single bisection job to be cloned off the original job
type BisectionPlanEntry struct {
	OriginURL string `json:"originUrl"` // The URL of the job to clone

	Variable string `json:"variable"` // The issue variable to override
	Value    string `json:"value"`    // The new value of the issue variable, lacking exactly one issue
	Issue    string `json:"issue"`    // The issue which was held back

	Test string `json:"test"` // The TEST setting of the bisection job
}

// A Plan is an ordered list of bisection jobs.
// Entries are grouped by variable name and sorted by the held back issue within a variable.
type Plan []BisectionPlanEntry

// BisectTestName returns the test name of the job bisecting test without issue
func BisectTestName(test, issue string) string {
	return test + bisectTestInfix + issue
}

// PlanBisection creates one plan entry for every issue newly added in any of the passed changes.
// Removed issues don't result in any entries.
func PlanBisection(changes map[string]IssueVariableChange, test, originURL string) Plan {
	plan := Plan{}
	for _, name := range SortedChangeNames(changes) {
		change := changes[name]
		for _, issue := range change.Added().Sorted() {
			plan = append(plan, BisectionPlanEntry{
				OriginURL: originURL,

				Variable: name,
				Value:    change.Bad.Without(issue).Join(),
				Issue:    issue,

				Test: BisectTestName(test, issue),
			})
		}
	}
	return plan
}

// String renders the plan in a canonical, line based form
func (p Plan) String() string {
	var sb strings.Builder
	for _, e := range p {
		sb.WriteString(fmt.Sprintf("%s %s=%s TEST=%s\n", e.OriginURL, e.Variable, e.Value, e.Test))
	}
	return sb.String()
}

// Digest returns a digest of the canonical form of the plan. Equal plans have equal digests.
func (p Plan) Digest() string {
	return digest.FromString(p.String()).Encoded()
}
