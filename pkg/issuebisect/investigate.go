package issuebisect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dchest/uniuri"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// A JobSource fetches data about jobs from the job server
type JobSource interface {
	// Investigation returns the settings diff of the job at jobURL to its last good run.
	// An empty string means there is no diff.
	Investigation(ctx context.Context, jobURL string) (string, error)
	// Job returns the metadata of the job at jobURL
	Job(ctx context.Context, jobURL string) (*JobDescriptor, error)
}

// A Launcher clones jobs
type Launcher interface {
	// Clone clones the original job of entry with the entry's overrides.
	// It returns the URL of the created job, or an empty string if no URL could be determined.
	Clone(ctx context.Context, entry BisectionPlanEntry) (string, error)
}

// A Reporter posts comments on jobs
type Reporter interface {
	Comment(ctx context.Context, jobURL, text string) error
}

// A CreatedJob is a bisection job that was cloned successfully
type CreatedJob struct {
	Entry BisectionPlanEntry `json:"entry"`
	URL   string             `json:"url"`
}

// Result describes the outcome of an investigation
type Result struct {
	RunID string `json:"runId"`

	Skip SkipReason `json:"-"`
	// Reason is a human readable explanation why the run stopped before cloning. Empty if jobs were cloned.
	Reason string `json:"reason,omitempty"`

	Plan    Plan         `json:"plan"`
	Created []CreatedJob `json:"created"`

	Commented bool `json:"commented"`
}

// An Investigator runs a whole bisection investigation of a single job.
// Source, Launcher and Reporter have to be set. Launcher and Reporter are not used in dry runs.
type Investigator struct {
	Source   JobSource
	Launcher Launcher
	Reporter Reporter

	Config *Config // Falls back to DefaultConfig if nil

	// Confirm gets called with the plan before any job is cloned. If it returns false, nothing is cloned.
	// Nil means every plan gets accepted.
	Confirm func(Plan) bool

	Log *logrus.Logger // The log to which information gets printed to
}

// Run investigates the job at jobURL and clones one bisection job per newly introduced issue.
// Runs stopping early, e.g. because the job is not eligible, return a result and a nil error.
func (inv *Investigator) Run(ctx context.Context, jobURL string) (*Result, error) {
	logger := inv.Log
	if logger == nil {
		// Mute logger
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	config := inv.Config
	if config == nil {
		config = DefaultConfig()
	}
	eligibility, err := config.Eligibility()
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uniuri.New(), Plan: Plan{}}
	log := logger.WithFields(logrus.Fields{"run-id": res.RunID, "job": jobURL})

	stop := func(reason string) (*Result, error) {
		log.Infof("Not bisecting: %s", reason)
		res.Reason = reason
		return res, nil
	}

	log.Debug("Fetching investigation diff...")
	diff, err := inv.Source.Investigation(ctx, jobURL)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to fetch investigation of %s", jobURL), err)
	}
	if strings.TrimSpace(diff) == "" {
		return stop("no diff to last good job")
	}

	entries := ParseDiff(diff, config.IssueSuffix)
	changes := FilterChanges(entries)
	log.Debugf("Found %d changed issue variables, %d worth bisecting", len(entries), len(changes))
	if len(changes) == 0 {
		return stop("no issue variable gained issues")
	}

	log.Debug("Fetching job metadata...")
	job, err := inv.Source.Job(ctx, jobURL)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to fetch job %s", jobURL), err)
	}
	if res.Skip = eligibility.Check(job); res.Skip != SkipNone {
		return stop(res.Skip.String())
	}

	res.Plan = PlanBisection(changes, job.TestName(), jobURL)
	if len(res.Plan) == 0 {
		return stop("empty bisection plan")
	}
	for _, name := range SortedChangeNames(changes) {
		change := changes[name]
		log.Infof("%s gained %v and lost %v", name, change.Added().Sorted(), change.Removed().Sorted())
	}
	log.Infof("Planned %d bisection jobs (plan %s)", len(res.Plan), res.Plan.Digest())

	if config.DryRun {
		return stop("dry run")
	}
	if inv.Confirm != nil && !inv.Confirm(res.Plan) {
		return stop("plan was not confirmed")
	}

	res.Created = inv.launch(ctx, log, res.Plan, config.MaxConcurrentClones)
	if len(res.Created) == 0 {
		log.Warn("None of the bisection jobs could be created")
		return res, nil
	}

	if err := inv.Reporter.Comment(ctx, jobURL, SummaryComment(res.Created)); err != nil {
		return res, errors.Join(fmt.Errorf("failed to comment on %s", jobURL), err)
	}
	res.Commented = true
	log.Infof("Created %d bisection jobs", len(res.Created))

	return res, nil
}

// launch clones one job per plan entry, running at most maxConcurrent clones at once.
// The returned jobs keep the order of the plan. Entries whose clone did not yield a URL are left out.
func (inv *Investigator) launch(ctx context.Context, log *logrus.Entry, plan Plan, maxConcurrent uint) []CreatedJob {
	if maxConcurrent == 0 {
		maxConcurrent = 1
	}
	sem := semaphore.NewWeighted(int64(maxConcurrent))

	urls := make([]string, len(plan))
	var wg sync.WaitGroup
	for i, entry := range plan {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warnf("Not cloning remaining jobs - %v", err)
			break
		}
		wg.Add(1)
		go func(i int, entry BisectionPlanEntry) {
			defer wg.Done()
			defer sem.Release(1)

			url, err := inv.Launcher.Clone(ctx, entry)
			if err != nil {
				log.Warnf("Failed to clone %s for %s - %v", entry.OriginURL, entry.Test, err)
				return
			}
			if url == "" {
				log.Warnf("Clone for %s did not report a created job", entry.Test)
				return
			}
			log.Debugf("Created %s for %s", url, entry.Test)
			urls[i] = url
		}(i, entry)
	}
	wg.Wait()

	var created []CreatedJob
	for i, url := range urls {
		if url != "" {
			created = append(created, CreatedJob{Entry: plan[i], URL: url})
		}
	}
	return created
}

// SummaryComment renders the comment listing all created bisection jobs
func SummaryComment(created []CreatedJob) string {
	var sb strings.Builder
	sb.WriteString("Automatic bisect jobs:\n\n")
	for _, job := range created {
		sb.WriteString(fmt.Sprintf("* **%s**: %s\n", job.Entry.Test, job.URL))
	}
	return sb.String()
}
