package issuebisect

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	RelationParallel        = "Parallel"
	RelationDirectlyChained = "Directly chained"
)

// A JobDescriptor holds the metadata of a job, as returned by the job API
type JobDescriptor struct {
	ID      int    `json:"id"`
	CloneID *int   `json:"clone_id"` // ID of the clone of this job, nil if the job was never cloned
	Name    string `json:"name"`
	Result  string `json:"result"`

	Group       string `json:"group"`
	ParentGroup string `json:"parent_group"`

	Settings map[string]string `json:"settings"`

	Parents  map[string][]int `json:"parents"`  // IDs of parent jobs keyed by the kind of relationship
	Children map[string][]int `json:"children"` // IDs of child jobs keyed by the kind of relationship
}

// TestName returns the TEST setting of the job
func (j JobDescriptor) TestName() string {
	return j.Settings["TEST"]
}

// FullGroup returns the group name qualified by its parent group, if the job has one
func (j JobDescriptor) FullGroup() string {
	if j.ParentGroup != "" {
		return fmt.Sprintf("%s / %s", j.ParentGroup, j.Group)
	}
	return j.Group
}

// hasSchedulingRelatives reports whether the job has a parallel or directly chained parent or child
func (j JobDescriptor) hasSchedulingRelatives() bool {
	for _, relatives := range []map[string][]int{j.Parents, j.Children} {
		if len(relatives[RelationParallel]) > 0 || len(relatives[RelationDirectlyChained]) > 0 {
			return true
		}
	}
	return false
}

// A SkipReason explains why a job is not bisected. SkipNone means the job is eligible.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipAlreadyCloned
	SkipHasRelatives
	SkipInvestigationJob
	SkipExcludedGroup
	SkipNoTestName
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "eligible"
	case SkipAlreadyCloned:
		return "job was already cloned"
	case SkipHasRelatives:
		return "job has parallel or directly chained relatives"
	case SkipInvestigationJob:
		return "job is an investigation job itself"
	case SkipExcludedGroup:
		return "job group is excluded"
	case SkipNoTestName:
		return "job has no TEST setting"
	}
	return fmt.Sprintf("unknown skip reason %d", int(r))
}

// investigateMarker is part of the test name of every job created by an investigation
const investigateMarker = ":investigate:"

// EligibilityConfig configures which jobs may be bisected
type EligibilityConfig struct {
	// Jobs whose fully qualified group matches this pattern are skipped. Nil disables the check.
	ExcludeGroup *regexp.Regexp

	// Skip jobs whose TEST setting marks them as created by an investigation. Off by default.
	SkipInvestigationJobs bool
}

// Check decides whether the passed job may be bisected.
// Skipping is a regular outcome and thus not reported as an error.
func (c EligibilityConfig) Check(job *JobDescriptor) SkipReason {
	if job.CloneID != nil {
		return SkipAlreadyCloned
	}
	if job.hasSchedulingRelatives() {
		return SkipHasRelatives
	}
	if c.ExcludeGroup != nil && c.ExcludeGroup.MatchString(job.FullGroup()) {
		return SkipExcludedGroup
	}
	if c.SkipInvestigationJobs && strings.Contains(job.TestName(), investigateMarker) {
		return SkipInvestigationJob
	}
	if job.TestName() == "" {
		return SkipNoTestName
	}
	return SkipNone
}
