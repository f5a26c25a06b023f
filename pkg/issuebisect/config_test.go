package issuebisect

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigFromYaml(t *testing.T) {
	yml := `
host: "https://openqa.example.com"
excludeGroupRegex: "^tools/"
cloneCommand: "/usr/bin/openqa-clone-job"
maxConcurrentClones: 4
requestTimeout: 5000
dryRun: true
skipInvestigationJobs: true
`

	config, err := GetConfigFromYaml(strings.NewReader(yml))
	require.Nil(t, err, "GetConfigFromYaml returned an error")

	assert.Equal(t, "https://openqa.example.com", config.Host, "Mismatch in config field")
	assert.Equal(t, "^tools/", config.ExcludeGroupRegex, "Mismatch in config field")
	assert.Equal(t, "/usr/bin/openqa-clone-job", config.CloneCommand, "Mismatch in config field")
	assert.Equal(t, "openqa-cli", config.CliCommand, "Default not applied")
	assert.Equal(t, DefaultIssueSuffix, config.IssueSuffix, "Default not applied")
	assert.Equal(t, uint(4), config.MaxConcurrentClones, "Mismatch in config field")
	assert.Equal(t, 5*time.Second, config.RequestTimeout, "Mismatch in config field")
	assert.True(t, config.DryRun, "Mismatch in config field")
	assert.True(t, config.SkipInvestigationJobs, "Mismatch in config field")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "", config.Host)
	assert.Equal(t, "", config.ExcludeGroupRegex)
	assert.Equal(t, DefaultIssueSuffix, config.IssueSuffix)
	assert.Equal(t, "openqa-clone-job", config.CloneCommand)
	assert.Equal(t, uint(1), config.MaxConcurrentClones)
	assert.Equal(t, 30*time.Second, config.RequestTimeout)
	assert.False(t, config.DryRun)
	assert.False(t, config.SkipInvestigationJobs)

	empty, err := GetConfigFromYaml(strings.NewReader(""))
	require.NoError(t, err, "Empty config is invalid")
	assert.Equal(t, config, empty, "Empty config differs from default config")
}

func TestConfigEligibility(t *testing.T) {
	t.Run("No pattern disables group check", func(t *testing.T) {
		el, err := DefaultConfig().Eligibility()
		require.NoError(t, err)
		assert.Nil(t, el.ExcludeGroup)
		assert.False(t, el.SkipInvestigationJobs, "Investigation jobs skipped by default")
	})

	t.Run("Investigation job skipping is passed on", func(t *testing.T) {
		config := DefaultConfig()
		config.SkipInvestigationJobs = true
		config.ExcludeGroupRegex = "^tools/"

		el, err := config.Eligibility()
		require.NoError(t, err)
		assert.True(t, el.SkipInvestigationJobs)
		assert.NotNil(t, el.ExcludeGroup)
	})

	t.Run("Pattern from environment", func(t *testing.T) {
		t.Setenv(ExcludeGroupEnv, "^tools/")
		config := DefaultConfig()
		config.ApplyEnv()

		el, err := config.Eligibility()
		require.NoError(t, err)
		assert.True(t, el.ExcludeGroup.MatchString("tools/bisect"))
		assert.False(t, el.ExcludeGroup.MatchString("qa/tools"))
	})

	t.Run("Configured pattern beats environment", func(t *testing.T) {
		t.Setenv(ExcludeGroupEnv, "^tools/")
		config := DefaultConfig()
		config.ExcludeGroupRegex = "^qa/"
		config.ApplyEnv()

		assert.Equal(t, "^qa/", config.ExcludeGroupRegex)
	})

	t.Run("Invalid pattern", func(t *testing.T) {
		config := DefaultConfig()
		config.ExcludeGroupRegex = "[a-"
		_, err := config.Eligibility()
		assert.Error(t, err)
	})
}
