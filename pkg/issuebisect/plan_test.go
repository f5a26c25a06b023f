package issuebisect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

const originURL = "https://openqa.example.com/tests/1234"

func TestPlanBisection(t *testing.T) {
	t.Run("One entry per added issue in lexicographic order", func(t *testing.T) {
		changes := map[string]IssueVariableChange{
			"FOO_TEST_ISSUES": {
				Name: "FOO_TEST_ISSUES",
				Good: NewIssueSet("A", "B"),
				Bad:  NewIssueSet("D", "A", "C", "B"),
			},
		}

		expected := Plan{
			{OriginURL: originURL, Variable: "FOO_TEST_ISSUES", Value: "A,B,D", Issue: "C", Test: "mytest:investigate:bisect_without_C"},
			{OriginURL: originURL, Variable: "FOO_TEST_ISSUES", Value: "A,B,C", Issue: "D", Test: "mytest:investigate:bisect_without_D"},
		}

		if diff := cmp.Diff(expected, PlanBisection(changes, "mytest", originURL)); diff != "" {
			t.Errorf("PlanBisection() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Entries are grouped by variable", func(t *testing.T) {
		changes := map[string]IssueVariableChange{
			"ZED_TEST_ISSUES": {Name: "ZED_TEST_ISSUES", Good: NewIssueSet("1"), Bad: NewIssueSet("1", "2")},
			"ABC_TEST_ISSUES": {Name: "ABC_TEST_ISSUES", Good: NewIssueSet("9"), Bad: NewIssueSet("8", "7")},
		}

		plan := PlanBisection(changes, "t", originURL)

		variables := []string{}
		issues := []string{}
		for _, e := range plan {
			variables = append(variables, e.Variable)
			issues = append(issues, e.Issue)
		}
		assert.Equal(t, []string{"ABC_TEST_ISSUES", "ABC_TEST_ISSUES", "ZED_TEST_ISSUES"}, variables, "Wrong variable order")
		assert.Equal(t, []string{"7", "8", "2"}, issues, "Wrong issue order")
		assert.Equal(t, "8", plan[0].Value, "Wrong value without issue 7")
		assert.Equal(t, "7", plan[1].Value, "Wrong value without issue 8")
	})

	t.Run("Removed issues don't result in entries", func(t *testing.T) {
		changes := map[string]IssueVariableChange{
			"FOO_TEST_ISSUES": {Name: "FOO_TEST_ISSUES", Good: NewIssueSet("1", "2", "3"), Bad: NewIssueSet("1", "4")},
		}

		plan := PlanBisection(changes, "t", originURL)

		assert.Len(t, plan, 1, "Wrong amount of entries")
		assert.Equal(t, "4", plan[0].Issue, "Wrong held back issue")
		assert.Equal(t, "1", plan[0].Value, "Wrong value")
	})

	t.Run("No changes result in an empty plan", func(t *testing.T) {
		assert.Empty(t, PlanBisection(nil, "t", originURL))
	})

	t.Run("Planning is idempotent", func(t *testing.T) {
		diff := `-  "FOO_TEST_ISSUES": "1,2",
+  "FOO_TEST_ISSUES": "5,1,2,3,4",
-  "BAR_TEST_ISSUES": "x",
+  "BAR_TEST_ISSUES": "y,z",`

		first := PlanBisection(FilterChanges(ParseDiff(diff, DefaultIssueSuffix)), "t", originURL)
		second := PlanBisection(FilterChanges(ParseDiff(diff, DefaultIssueSuffix)), "t", originURL)

		assert.Equal(t, first.String(), second.String(), "Plans of identical input differ")
		assert.Equal(t, first.Digest(), second.Digest(), "Digests of identical input differ")
		assert.Len(t, first, 5, "Wrong amount of entries")
	})
}

func TestPlanDigest(t *testing.T) {
	a := Plan{{OriginURL: originURL, Variable: "FOO_TEST_ISSUES", Value: "1", Test: "t:investigate:bisect_without_2"}}
	b := Plan{{OriginURL: originURL, Variable: "FOO_TEST_ISSUES", Value: "2", Test: "t:investigate:bisect_without_1"}}

	assert.NotEqual(t, a.Digest(), b.Digest(), "Different plans have the same digest")
	assert.Len(t, a.Digest(), 64, "Digest is not a sha256 hex digest")
}
