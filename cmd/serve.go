package cmd

import (
	"github.com/DominicWuest/issuebisect/internal/openqa"
	"github.com/DominicWuest/issuebisect/internal/server"
	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a webhook server triggering bisections",
	Long: `Start a webhook server triggering bisections of jobs on the configured host.

GET /plan/:jobId returns the bisection plan of a job without cloning anything.
POST /bisect/:jobId runs a full bisection of a job.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		log := newLogger()

		// Fail early on invalid patterns instead of on every request
		if _, err := config.Eligibility(); err != nil {
			logrus.Fatalf("Invalid config - %v", err)
		}

		newInvestigator := func(dryRun bool) *issuebisect.Investigator {
			c := *config
			c.DryRun = c.DryRun || dryRun
			source, launcher, reporter := openqa.NewCollaborators(&c, log)
			return &issuebisect.Investigator{
				Source:   source,
				Launcher: launcher,
				Reporter: reporter,
				Config:   &c,
				Log:      log,
			}
		}

		if _, err := server.NewServer(config.Host, servePort, newInvestigator); err != nil {
			logrus.Fatalf("Failed to start webhook server - %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 40032, "The port on which to start the server")
}
