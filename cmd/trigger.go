package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/DominicWuest/issuebisect/internal/openqa"
	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/manifoldco/promptui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var triggerDryRun bool
var triggerInteractive bool
var triggerSkipInvestigationJobs bool

var triggerCmd = &cobra.Command{
	Use:   "trigger job-url",
	Short: "Clone one bisection job per newly introduced issue of a failed job",
	Long: `Clone one bisection job per newly introduced issue of a failed job.
The settings diff of the job to its last good job is fetched from the job server.
Every issue added to any issue list variable results in one clone of the job running without that issue.
A comment listing all created jobs is posted on the failed job.

Jobs which were already cloned, have parallel or directly chained relatives or belong to an excluded group are skipped.
With --skip-investigation-jobs, jobs created by an earlier investigation are skipped as well.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		if triggerDryRun {
			config.DryRun = true
		}
		if triggerSkipInvestigationJobs {
			config.SkipInvestigationJobs = true
		}
		log := newLogger()

		source, launcher, reporter := openqa.NewCollaborators(config, log)
		inv := issuebisect.Investigator{
			Source:   source,
			Launcher: launcher,
			Reporter: reporter,
			Config:   config,
			Log:      log,
		}
		if triggerInteractive {
			inv.Confirm = confirmPlan
		}

		res, err := inv.Run(context.Background(), args[0])
		if err != nil {
			logrus.Fatalf("Failed to bisect %s - %v", args[0], err)
		}

		if config.DryRun {
			fmt.Print(res.Plan.String())
			return
		}
		for _, job := range res.Created {
			fmt.Printf("%s: %s\n", job.Entry.Test, job.URL)
		}
	},
}

// confirmPlan prints the plan and asks whether it should be executed
func confirmPlan(plan issuebisect.Plan) bool {
	fmt.Fprint(os.Stderr, plan.String())

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Clone %d bisection jobs", len(plan)),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func init() {
	rootCmd.AddCommand(triggerCmd)

	triggerCmd.Flags().BoolVarP(&triggerDryRun, "dry-run", "n", false, "Only print the bisection plan, don't clone or comment")
	triggerCmd.Flags().BoolVarP(&triggerInteractive, "interactive", "i", false, "Ask for confirmation before cloning")
	triggerCmd.Flags().BoolVar(&triggerSkipInvestigationJobs, "skip-investigation-jobs", false, "Don't bisect jobs which were created by an investigation")
}
