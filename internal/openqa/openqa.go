// Package openqa talks to an openQA job server: it fetches investigation diffs and job metadata over HTTP, clones
// jobs with openqa-clone-job and posts comments with openqa-cli.
package openqa

import (
	"strings"

	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/sirupsen/logrus"
)

// NewCollaborators creates the source, launcher and reporter for an investigation based on config
func NewCollaborators(config *issuebisect.Config, log *logrus.Logger) (*Client, *Launcher, *Reporter) {
	entry := logrus.NewEntry(log)
	return NewClient(config.Host, config.RequestTimeout),
		&Launcher{Command: config.CloneCommand, Run: ExecRunner, Log: entry},
		&Reporter{Command: config.CliCommand, Host: strings.TrimRight(config.Host, "/"), Run: ExecRunner, Log: entry}
}
