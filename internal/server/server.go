package server

import (
	"fmt"

	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
)

// An InvestigatorFactory creates a fresh investigator for every request.
// dryRun is set for requests which must not clone or comment.
type InvestigatorFactory func(dryRun bool) *issuebisect.Investigator

type Server interface {
	Init(port int) error
}

// NewServer creates a webhook server for jobs on host and starts listening on port.
// Init blocks for as long as the server is running.
func NewServer(host string, port int, newInvestigator InvestigatorFactory) (Server, error) {
	if host == "" {
		return nil, fmt.Errorf("a job server host has to be configured for the webhook server")
	}
	server := &httpServer{host: host, newInvestigator: newInvestigator}
	return server, server.Init(port)
}
