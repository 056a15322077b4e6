package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pancakes/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_FlagsOverrideFileAndEnv(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "warn")
	t.Setenv(config.StateDirEnv, "/from/env")
	path := writeConfig(t, "log_level = \"error\"\nfps = 30\n")

	stateDir := t.TempDir()
	cfg, err := loadConfig(flags{configPath: path, stateDir: stateDir, logLevel: "debug"})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, stateDir, cfg.StateDir)
	assert.Equal(t, filepath.Join(stateDir, "pancakes.log"), cfg.LogPath)
	assert.Equal(t, 30, cfg.FPS)
}

func TestLoadConfig_FlagRescuesBadEnvLevel(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "loud")
	path := writeConfig(t, "")

	cfg, err := loadConfig(flags{configPath: path, logLevel: "info", stateDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = loadConfig(flags{configPath: path, stateDir: t.TempDir()})
	assert.Error(t, err, "without the flag the env level is still rejected")
}

func TestLoadConfig_RejectsBadFlagLevel(t *testing.T) {
	path := writeConfig(t, "")
	_, err := loadConfig(flags{configPath: path, logLevel: "loud", stateDir: t.TempDir()})
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(flags{configPath: filepath.Join(t.TempDir(), "nope.toml")})
	assert.Error(t, err)
}

func TestAnimationConfig(t *testing.T) {
	cfg := config.Default()
	cfg.FPS = 90
	cfg.Transition.Duration.Duration = 250 * time.Millisecond

	a := animationConfig(cfg)
	assert.Equal(t, 90, a.FPS)
	assert.Equal(t, 250*time.Millisecond, a.Duration)
	assert.Equal(t, cfg.Transition.Frequency, a.Frequency)
	assert.Equal(t, cfg.Transition.Damping, a.Damping)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"config", "state-dir", "log-level", "fresh"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	require.NoError(t, cmd.ParseFlags([]string{"--fresh", "-c", "x.toml"}))
	fresh, err := cmd.Flags().GetBool("fresh")
	require.NoError(t, err)
	assert.True(t, fresh)
}
