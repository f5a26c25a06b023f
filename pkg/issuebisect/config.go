package issuebisect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// ExcludeGroupEnv is the environment variable consulted for the group exclusion pattern if none was configured
const ExcludeGroupEnv = "EXCLUDE_GROUP_REGEX"

type configYaml struct {
	Host string `yaml:"host"`

	ExcludeGroupRegex string `yaml:"excludeGroupRegex"`

	SkipInvestigationJobs bool `yaml:"skipInvestigationJobs"`

	IssueSuffix string `yaml:"issueSuffix" default:"_TEST_ISSUES"`

	CloneCommand string `yaml:"cloneCommand" default:"openqa-clone-job"`
	CliCommand   string `yaml:"cliCommand" default:"openqa-cli"`

	MaxConcurrentClones uint `yaml:"maxConcurrentClones" default:"1"`

	RequestTimeout int `yaml:"requestTimeout" default:"30000"` // In milliseconds

	DryRun bool `yaml:"dryRun"`
}

// Config holds all settings of an investigation
type Config struct {
	Host string // The base URL of the job server. If empty, it is derived from the job URL

	ExcludeGroupRegex string // Pattern of fully qualified job groups never to bisect. Empty disables the check

	SkipInvestigationJobs bool // Never bisect jobs which were created by an investigation themselves

	IssueSuffix string // The suffix of all issue list variables

	CloneCommand string // The command used for cloning jobs
	CliCommand   string // The command used for talking to the job server API, e.g. for posting comments

	MaxConcurrentClones uint // The max amount of clones running at once

	RequestTimeout time.Duration // The timeout of every HTTP request to the job server

	DryRun bool // Only plan the bisection, don't clone or comment
}

// DefaultConfig returns a config with all defaults set
func DefaultConfig() *Config {
	config, _ := GetConfigFromYaml(nil)
	return config
}

// GetConfigFromYaml reads in a config in yaml format from a reader. Unset values are populated with their defaults.
// A nil reader results in the default config.
func GetConfigFromYaml(r io.Reader) (*Config, error) {
	var config configYaml

	if r != nil {
		decoder := yaml.NewDecoder(r)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	if err := defaults.Set(&config); err != nil {
		return nil, err
	}

	return &Config{
		Host: config.Host,

		ExcludeGroupRegex: config.ExcludeGroupRegex,

		SkipInvestigationJobs: config.SkipInvestigationJobs,

		IssueSuffix: config.IssueSuffix,

		CloneCommand: config.CloneCommand,
		CliCommand:   config.CliCommand,

		MaxConcurrentClones: config.MaxConcurrentClones,

		RequestTimeout: time.Duration(config.RequestTimeout) * time.Millisecond,

		DryRun: config.DryRun,
	}, nil
}

// ApplyEnv fills in settings which were left empty from the environment
func (c *Config) ApplyEnv() {
	if c.ExcludeGroupRegex == "" {
		c.ExcludeGroupRegex = os.Getenv(ExcludeGroupEnv)
	}
}

// Eligibility compiles the eligibility config described by this config
func (c *Config) Eligibility() (EligibilityConfig, error) {
	eligibility := EligibilityConfig{SkipInvestigationJobs: c.SkipInvestigationJobs}
	if c.ExcludeGroupRegex == "" {
		return eligibility, nil
	}
	re, err := regexp.Compile(c.ExcludeGroupRegex)
	if err != nil {
		return EligibilityConfig{}, fmt.Errorf("invalid group exclusion pattern %q - %v", c.ExcludeGroupRegex, err)
	}
	eligibility.ExcludeGroup = re
	return eligibility, nil
}
