// Package config loads pancakes settings: defaults, then an optional TOML
// file, then environment overrides. Command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// LogLevelEnv overrides log_level.
	LogLevelEnv = "PANCAKES_LOG_LEVEL"
	// StateDirEnv overrides state_dir.
	StateDirEnv = "PANCAKES_STATE_DIR"

	// DefaultDir is the settings and state directory under the user's home.
	DefaultDir = ".pancakes"
	// DefaultFile is the config file name inside DefaultDir.
	DefaultFile = "config.toml"
)

// Config is the full set of settings.
type Config struct {
	LogLevel   string     `toml:"log_level"`
	LogPath    string     `toml:"log_path"`
	StateDir   string     `toml:"state_dir"`
	FPS        int        `toml:"fps"`
	Transition Transition `toml:"transition"`
}

// Transition tunes the push and pop animations.
type Transition struct {
	Duration  Duration `toml:"duration"`
	Frequency float64  `toml:"frequency"`
	Damping   float64  `toml:"damping"`
}

// Duration is a time.Duration read from a string such as "400ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings. StateDir and LogPath are left empty
// and resolved against the home directory by ResolvePaths.
func Default() Config {
	return Config{
		LogLevel: "info",
		FPS:      60,
		Transition: Transition{
			Duration:  Duration{400 * time.Millisecond},
			Frequency: 8,
			Damping:   1,
		},
	}
}

// DefaultPath returns ~/.pancakes/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDir, DefaultFile), nil
}

// Load builds the configuration. An empty path reads DefaultPath if it exists;
// an explicit path must exist. Environment overrides are applied after the file.
// The result is not validated: callers apply their own overrides and then call
// Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	if err := decodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(LogLevelEnv); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(StateDirEnv); v != "" {
		cfg.StateDir = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps: %d out of range 1-240", c.FPS)
	}
	if c.Transition.Duration.Duration <= 0 {
		return errors.New("transition.duration: must be positive")
	}
	if c.Transition.Frequency <= 0 {
		return errors.New("transition.frequency: must be positive")
	}
	if c.Transition.Damping <= 0 {
		return errors.New("transition.damping: must be positive")
	}
	return nil
}

// ResolvePaths fills an empty StateDir with ~/.pancakes and an empty LogPath
// with pancakes.log inside the state directory.
func (c *Config) ResolvePaths() error {
	if c.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home: %w", err)
		}
		c.StateDir = filepath.Join(home, DefaultDir)
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.StateDir, "pancakes.log")
	}
	return nil
}
