package openqa

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// A JobRef points to a single job on a job server
type JobRef struct {
	Host string // Scheme and host of the server, e.g. https://openqa.opensuse.org
	ID   int
}

// ParseJobURL splits a job URL of the form <host>/tests/<id> into host and job ID.
// Fragments and queries, like the #step anchors of the web UI, are ignored.
func ParseJobURL(jobURL string) (JobRef, error) {
	u, err := url.Parse(jobURL)
	if err != nil {
		return JobRef{}, fmt.Errorf("invalid job url %s - %v", jobURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return JobRef{}, fmt.Errorf("job url %s lacks scheme or host", jobURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] != "tests" {
		return JobRef{}, fmt.Errorf("job url %s does not point to a test", jobURL)
	}
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || id <= 0 {
		return JobRef{}, fmt.Errorf("job url %s does not contain a valid job id", jobURL)
	}

	// Keep path prefixes of servers not hosted at the root
	prefix := strings.Join(parts[:len(parts)-2], "/")
	host := fmt.Sprintf("%s://%s", u.Scheme, u.Host)
	if prefix != "" {
		host += "/" + prefix
	}

	return JobRef{Host: host, ID: id}, nil
}

// URL returns the web UI URL of the job
func (r JobRef) URL() string {
	return fmt.Sprintf("%s/tests/%d", r.Host, r.ID)
}
