package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, "follower-reports", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, 1000, cfg.Twitter.PageSize)
	assert.Equal(t, []string{"tweet.read", "users.read", "follows.read", "offline.access"}, cfg.Twitter.ScopeList())
	assert.Equal(t, 3600, cfg.Tracker.IntervalSeconds)
	assert.Equal(t, "follower-tracker:run:", cfg.Redis.Prefix)
	assert.Equal(t, "follower_tracker", cfg.Metrics.Job)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("TRACKER_TARGET", "gopher")
	t.Setenv("TRACKER_DRY_RUN", "true")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "8")
	t.Setenv("TWITTER_CLIENT_ID", "abc")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gopher", cfg.Tracker.Target)
	assert.True(t, cfg.Tracker.DryRun)
	assert.Equal(t, 8, cfg.Database.MaxOpenConns)
	assert.Equal(t, "abc", cfg.Twitter.ClientID)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "TRACKER_TARGET=from_file\nREDIS_URL=redis://localhost:6379/0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("TRACKER_TARGET")
		os.Unsetenv("REDIS_URL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.Tracker.Target)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}
