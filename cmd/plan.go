package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var planTest string
var planURL string

var planCmd = &cobra.Command{
	Use:   "plan diff-file",
	Short: "Print the bisection plan of a settings diff",
	Long: `Print the bisection plan of a settings diff without talking to a job server.
The diff is read from the passed file, or from stdin if the file is "-".
Job eligibility is not checked.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		log := newLogger()

		var r io.Reader = os.Stdin
		if args[0] != "-" {
			file, err := os.Open(args[0])
			if err != nil {
				logrus.Fatalf("Failed to open diff - %v", err)
			}
			defer file.Close()
			r = file
		}
		diff, err := io.ReadAll(r)
		if err != nil {
			logrus.Fatalf("Failed to read diff - %v", err)
		}

		changes := issuebisect.FilterChanges(issuebisect.ParseDiff(string(diff), config.IssueSuffix))
		for _, name := range issuebisect.SortedChangeNames(changes) {
			change := changes[name]
			log.Infof("%s gained %v and lost %v", name, change.Added().Sorted(), change.Removed().Sorted())
		}

		plan := issuebisect.PlanBisection(changes, planTest, planURL)
		log.Infof("Planned %d bisection jobs (plan %s)", len(plan), plan.Digest())
		fmt.Print(plan.String())
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planTest, "test", "t", "", "The TEST setting of the regressed job")
	planCmd.Flags().StringVarP(&planURL, "url", "u", "", "The URL of the regressed job")
	planCmd.MarkFlagRequired("test")
}
