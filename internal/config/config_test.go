package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfigRoot(t *testing.T) {
	t.Helper()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, DefaultPageURL, c.PageURL)
	assert.Equal(t, "pdfs", c.Output)
	assert.Equal(t, 2, c.DelaySeconds)
	assert.Equal(t, 10, c.TimeoutSeconds)
	assert.False(t, c.KeepPartial)
}

func TestLoadMergedWithoutProfileFallsBackToDefaults(t *testing.T) {
	isolateConfigRoot(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultPageURL, cfg.PageURL)
	assert.Equal(t, "pdfs", cfg.Output)
}

func TestLoadMergedFlagsOverrideProfile(t *testing.T) {
	isolateConfigRoot(t)

	profile := &Config{
		PageURL:      "https://example.org/bulletins",
		Output:       "archive",
		DelaySeconds: 5,
	}

	require.NoError(t, os.MkdirAll(ConfigsDir(), 0755))
	require.NoError(t, SaveYAML(profile, filepath.Join(ConfigsDir(), "Test.yaml")))
	require.NoError(t, os.WriteFile(CurrentLabelFile(), []byte("Test"), 0644))

	cfg, used, err := LoadMerged(Options{
		Output:    "elsewhere",
		UserAgent: "custom-agent",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ConfigsDir(), "Test.yaml"), used)

	// flag wins
	assert.Equal(t, "elsewhere", cfg.Output)
	assert.Equal(t, "custom-agent", cfg.UserAgent)
	// profile value survives where no flag was given
	assert.Equal(t, "https://example.org/bulletins", cfg.PageURL)
	assert.Equal(t, 5, cfg.DelaySeconds)
	// zero-value profile fields are normalized
	assert.Equal(t, DefaultTimeout, cfg.TimeoutSeconds)
}

func TestLoadMergedIgnoreConfig(t *testing.T) {
	isolateConfigRoot(t)

	require.NoError(t, os.MkdirAll(ConfigsDir(), 0755))
	require.NoError(t, SaveYAML(&Config{Output: "from-profile"}, filepath.Join(ConfigsDir(), "Test.yaml")))
	require.NoError(t, os.WriteFile(CurrentLabelFile(), []byte("Test"), 0644))

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "pdfs", cfg.Output)
}

func TestSwitchAndRemoveConfig(t *testing.T) {
	isolateConfigRoot(t)

	require.NoError(t, os.MkdirAll(ConfigsDir(), 0755))
	require.NoError(t, SaveYAML(DefaultConfig(), filepath.Join(ConfigsDir(), "Default.yaml")))
	require.NoError(t, SaveYAML(DefaultConfig(), filepath.Join(ConfigsDir(), "Work.yaml")))

	require.NoError(t, SwitchConfig("Work"))

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Work", label)

	assert.Error(t, SwitchConfig("Missing"))
	assert.Error(t, RemoveConfig("Default"))

	// removing the active profile falls back to Default
	require.NoError(t, RemoveConfig("Work"))
	label, err = CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)
}

func TestListConfigs(t *testing.T) {
	isolateConfigRoot(t)

	require.NoError(t, os.MkdirAll(ConfigsDir(), 0755))
	require.NoError(t, SaveYAML(DefaultConfig(), filepath.Join(ConfigsDir(), "B.yaml")))
	require.NoError(t, SaveYAML(DefaultConfig(), filepath.Join(ConfigsDir(), "A.yaml")))
	require.NoError(t, SwitchConfig("B"))

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Label)
	assert.False(t, list[0].Active)
	assert.Equal(t, "B", list[1].Label)
	assert.True(t, list[1].Active)
}
