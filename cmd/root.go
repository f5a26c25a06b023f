package cmd

import (
	"io"
	"os"

	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var verbosity int
var quiet bool
var configPath string
var excludeGroupRegex string

var rootCmd = &cobra.Command{
	Use:   "issuebisect",
	Short: "Bisect regressions of test jobs caused by newly introduced issues",
	Long: `issuebisect compares a failed job's settings to its last good job.
For every issue which was newly added to one of the issue lists of the failed job, a bisection job gets cloned which runs the same test without that issue.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase the verbosity of the log, can be repeated")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Don't log anything")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&excludeGroupRegex, "exclude-group-regex", "", "Never bisect jobs whose fully qualified group matches this pattern (default $"+issuebisect.ExcludeGroupEnv+")")
}

// newLogger creates the logger for all commands, respecting the verbosity flags
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})

	// Set logger verbosity
	if quiet {
		log.SetOutput(io.Discard)
	} else if verbosity == 0 {
		log.SetLevel(logrus.WarnLevel)
	} else if verbosity == 1 {
		log.SetLevel(logrus.InfoLevel)
	} else if verbosity == 2 {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.TraceLevel)
	}
	return log
}

// loadConfig reads the config file if one was passed and applies flags and environment on top of it
func loadConfig() *issuebisect.Config {
	config := issuebisect.DefaultConfig()
	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			logrus.Fatalf("Failed to open config - %v", err)
		}
		defer file.Close()

		config, err = issuebisect.GetConfigFromYaml(file)
		if err != nil {
			logrus.Fatalf("Failed to read config from yaml - %v", err)
		}
	}

	if excludeGroupRegex != "" {
		config.ExcludeGroupRegex = excludeGroupRegex
	}
	config.ApplyEnv()

	return config
}
