package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qgrover.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, "shots: 2048\nworkers: 4\ndebug: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Shots)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Debug)
	assert.Equal(t, int64(1), cfg.Seed, "seed keeps its default")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeTempConfig(t, "shots: 0\n"))
	assert.ErrorContains(t, err, "shots must be positive")

	_, err = Load(writeTempConfig(t, "shotz: 10\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Load(writeTempConfig(t, "workers: [1\n"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	cfg.LogFile = "run.log"

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestCreateLoggerWritesFile(t *testing.T) {
	cfg := Default()
	cfg.Debug = true
	cfg.LogFile = filepath.Join(t.TempDir(), "qgrover.log")

	logger, err := cfg.CreateLogger()
	require.NoError(t, err)
	logger.Debug("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
