package openqa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
)

// Client fetches job data from a job server's HTTP API
type Client struct {
	// Host overrides the host of all job URLs if set, e.g. for reaching the server through an internal address
	Host string

	httpCli *http.Client
}

// NewClient creates a new client whose requests time out after timeout
func NewClient(host string, timeout time.Duration) *Client {
	return &Client{
		Host:    strings.TrimRight(host, "/"),
		httpCli: &http.Client{Timeout: timeout},
	}
}

type investigationResponse struct {
	DiffToLastGood *string `json:"diff_to_last_good"`
}

type jobResponse struct {
	Job *issuebisect.JobDescriptor `json:"job"`
}

// Investigation returns the settings diff of the job at jobURL to its last good job.
// If the server has no last good job, an empty diff is returned.
func (c *Client) Investigation(ctx context.Context, jobURL string) (string, error) {
	ref, err := c.ref(jobURL)
	if err != nil {
		return "", err
	}

	var res investigationResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/tests/%d/investigation_ajax", ref.Host, ref.ID), &res); err != nil {
		return "", err
	}
	if res.DiffToLastGood == nil {
		return "", nil
	}
	return *res.DiffToLastGood, nil
}

// Job returns the metadata of the job at jobURL
func (c *Client) Job(ctx context.Context, jobURL string) (*issuebisect.JobDescriptor, error) {
	ref, err := c.ref(jobURL)
	if err != nil {
		return nil, err
	}

	var res jobResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/v1/jobs/%d", ref.Host, ref.ID), &res); err != nil {
		return nil, err
	}
	if res.Job == nil {
		return nil, fmt.Errorf("response for job %d contains no job", ref.ID)
	}
	return res.Job, nil
}

// ref parses jobURL, replacing its host with the configured one if set
func (c *Client) ref(jobURL string) (JobRef, error) {
	ref, err := ParseJobURL(jobURL)
	if err != nil {
		return JobRef{}, err
	}
	if c.Host != "" {
		ref.Host = c.Host
	}
	return ref, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to create request for %s", url), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return errors.Join(fmt.Errorf("request to %s failed", url), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to read response of %s", url), err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.Join(fmt.Errorf("malformed response of %s", url), err)
	}
	return nil
}
