package openqa

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Reporter posts comments using the openqa-cli api subcommand
type Reporter struct {
	Command string // The cli command, e.g. openqa-cli
	Host    string // Overrides the host of the job URL if set
	Run     Runner

	Log *logrus.Entry
}

// Comment posts text as comment on the job at jobURL
func (r *Reporter) Comment(ctx context.Context, jobURL, text string) error {
	ref, err := ParseJobURL(jobURL)
	if err != nil {
		return err
	}
	if r.Host != "" {
		ref.Host = r.Host
	}

	r.Log.Debugf("Commenting on job %d", ref.ID)
	out, err := r.Run(ctx, r.Command, "api", "--host", ref.Host, "-X", "POST", fmt.Sprintf("jobs/%d/comments", ref.ID), "text="+text)
	if err != nil {
		return errors.Join(fmt.Errorf("%s failed, output: %s", r.Command, out), err)
	}
	return nil
}
