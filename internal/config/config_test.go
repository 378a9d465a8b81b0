package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTestConfig is a helper that writes content to a temp file and loads it without validation.
func parseTestConfig(t *testing.T, content string) (*Config, error) {
	t.Helper()
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return LoadWithoutValidation(cfgPath)
}

func TestConfig_MultipleTargets(t *testing.T) {
	content := `
[library]
root = "/movies"

[[targets]]
dialect = "kodi"
naming = "{base}.nfo"

[[targets]]
dialect = "emby"
naming = "{base}.emby.nfo"

[[targets]]
dialect = "mediaportal"
naming = "{title} ({year}).mp.nfo"
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	require.Len(t, cfg.Targets, 3)
	assert.Equal(t, "kodi", cfg.Targets[0].Dialect)
	assert.Equal(t, "emby", cfg.Targets[1].Dialect)
	assert.Equal(t, "{title} ({year}).mp.nfo", cfg.Targets[2].Naming)
}

func TestConfig_SyncOptions(t *testing.T) {
	content := `
[library]
root = "/movies"

[sync]
clean_rewrite = true
rating_order = ["tmdb", "imdb"]
single_studio = true
write_lockdata = true
workers = 8
match_threshold = 0.9
backup_removed = true
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.True(t, cfg.Sync.CleanRewrite)
	assert.Equal(t, []string{"tmdb", "imdb"}, cfg.Sync.RatingOrder)
	assert.True(t, cfg.Sync.SingleStudio)
	assert.True(t, cfg.Sync.WriteLockData)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.InDelta(t, 0.9, cfg.Sync.MatchThreshold, 1e-9)
	assert.True(t, cfg.Sync.BackupRemoved)
}

func TestConfig_OmittedSyncFieldsDefault(t *testing.T) {
	content := `
[library]
root = "/movies"
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.False(t, cfg.Sync.CleanRewrite)
	assert.Equal(t, []string{"imdb", "tmdb", "default"}, cfg.Sync.RatingOrder)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.False(t, cfg.Sync.WriteLockData)
}

func TestConfig_TargetNamingDefaulted(t *testing.T) {
	content := `
[library]
root = "/movies"

[[targets]]
dialect = "jellyfin"
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	require.Len(t, cfg.Targets, 1)
	assert.Equal(t, "{base}.nfo", cfg.Targets[0].Naming)
}
