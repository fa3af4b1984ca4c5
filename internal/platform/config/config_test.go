package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banditboard/internal/platform/config"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".banditboard", "board.db"), cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, dir, cfg.ExportDir)
	assert.False(t, cfg.AssumeYes)
}

func TestNewAppliesConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := "db_path: data/custom.db\nlog_level: debug\nassume_yes: true\nexport_dir: /tmp/exports\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o644))

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "custom.db"), cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
}

func TestNewRejectsBrokenConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("log_level: [unclosed"), 0o644))

	_, err := config.New(dir)
	require.Error(t, err)
}

func TestNewUsesEnvDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	cfg, err := config.New("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
}
