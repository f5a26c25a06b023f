package openqa

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/sirupsen/logrus"
)

// OriginSetting is the setting tagging a bisection job with the job it was cloned from
const OriginSetting = "OPENQA_INVESTIGATE_ORIGIN"

// A Runner runs an external command and returns its combined output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands as subprocesses
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var createdJobRe = regexp.MustCompile(`Created job #\d+: .* -> (https?://\S+/t\d+)`)

// Launcher clones jobs using openqa-clone-job
type Launcher struct {
	Command string // The clone command, e.g. openqa-clone-job
	Run     Runner

	Log *logrus.Entry
}

// Clone clones the origin job of entry, overriding its issue variable and test name.
// If the command output contains no created job, an empty URL is returned.
func (l *Launcher) Clone(ctx context.Context, entry issuebisect.BisectionPlanEntry) (string, error) {
	args := []string{
		"--skip-chained-deps",
		"--within-instance", entry.OriginURL,
		fmt.Sprintf("%s=%s", entry.Variable, entry.Value),
		fmt.Sprintf("TEST=%s", entry.Test),
		fmt.Sprintf("%s=%s", OriginSetting, entry.OriginURL),
	}
	l.Log.Debugf("Running %s %s", l.Command, strings.Join(args, " "))

	out, err := l.Run(ctx, l.Command, args...)
	if err != nil {
		return "", errors.Join(fmt.Errorf("%s failed, output: %s", l.Command, out), err)
	}
	l.Log.Tracef("Clone output:\n%s", out)

	return CreatedJobURL(string(out)), nil
}

// CreatedJobURL returns the URL of the first job reported as created in the output of a clone.
// An empty string is returned if no job was created.
func CreatedJobURL(output string) string {
	m := createdJobRe.FindStringSubmatch(output)
	if m == nil {
		return ""
	}
	return m[1]
}
