/*
Package issuebisect plans bisection jobs for regressions caused by newly introduced test issues.

A regressed job's settings are compared against its last good run in the form of a textual diff. [ParseDiff]
turns the issue-list lines of that diff into [DiffEntry] records, [FilterChanges] keeps the variables that
actually gained issues and [PlanBisection] creates one [BisectionPlanEntry] per newly added issue, each holding
back exactly that issue.

Before planning, [EligibilityConfig.Check] decides whether a job may be bisected at all.
Jobs that were already cloned, that are part of a parallel or directly chained cluster or that belong to an excluded
group are skipped. Skipping jobs created by an investigation themselves can be enabled in the [EligibilityConfig].

The whole pass can be run against live collaborators using an [Investigator], which fetches the diff and job
metadata through a [JobSource], clones through a [Launcher] and reports through a [Reporter].
*/
package issuebisect
