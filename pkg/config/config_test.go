package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MaxResults)
	assert.True(t, cfg.Hints)
	assert.Equal(t, "tgl", cfg.Keyword)
	assert.Equal(t, 50, cfg.Threshold)
	assert.Equal(t, 24*time.Hour, cfg.TrackerTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.ProjectTTL)
	assert.Contains(t, cfg.TrackerCachePath(), "tracker_history.json")
	assert.Contains(t, cfg.ProjectCachePath(), "project_history.json")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
toggl_path: /usr/local/bin/toggl
max_results: 5
hints: false
commands:
  threshold: 70
  synonyms:
    begin: start
cache:
  tracker_ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/toggl", cfg.TogglPath)
	assert.Equal(t, 5, cfg.MaxResults)
	assert.False(t, cfg.Hints)
	assert.Equal(t, 70, cfg.Threshold)
	assert.Equal(t, map[string]string{"begin": "start"}, cfg.Synonyms)
	assert.Equal(t, time.Hour, cfg.TrackerTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.ProjectTTL, "unset keys keep their defaults")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TOGGLAUNCH_MAX_RESULTS", "3")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxResults)
}
