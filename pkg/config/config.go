// Package config loads and persists the daemon configuration. A missing
// config file is not an error: the defaults are written to the given
// path and the daemon continues. A malformed file fails fast.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// CheckInterval is the sampling period in seconds.
	CheckInterval float64 `yaml:"check_interval"`

	// Processes are the exact comm names to track.
	Processes []string `yaml:"processes"`

	// LogPath is the active sample log file; backups get .1..N suffixes.
	LogPath string `yaml:"log_path"`

	// MaxLogSize is the rotation threshold in bytes.
	MaxLogSize int64 `yaml:"max_log_size"`

	// MaxLogFiles is the number of rotated backups retained (>= 0).
	MaxLogFiles int `yaml:"max_log_files"`

	// LogDeadSamples controls whether a process that vanishes mid-tick
	// is logged as a Dead sample (true) or omitted (false).
	LogDeadSamples bool `yaml:"log_dead_samples"`

	// LegacyFields selects the minimal serialized field set (no
	// PID/VSZ/PSS) for compatibility with older log consumers.
	LegacyFields bool `yaml:"legacy_fields"`

	// ListenAddress enables the HTTP status endpoint; empty disables it.
	ListenAddress string `yaml:"listen_address"`

	// LogLevel is the daemon's diagnostic log level (trace..fatal).
	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		CheckInterval:  10,
		Processes:      []string{},
		LogPath:        "/var/log/sauron/process.log",
		MaxLogSize:     1 << 20, // 1 MiB
		MaxLogFiles:    5,
		LogDeadSamples: true,
		ListenAddress:  "",
		LogLevel:       "info",
	}
}

// Load reads the config at path. If the file does not exist, the
// defaults are written there and returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := cfg.Save(path); werr != nil {
				return nil, fmt.Errorf("write default config: %w", werr)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if c.CheckInterval <= 0 {
		return errors.New("check_interval must be > 0 seconds")
	}
	if c.LogPath == "" {
		return errors.New("log_path must not be empty")
	}
	if c.MaxLogSize <= 0 {
		return errors.New("max_log_size must be > 0 bytes")
	}
	if c.MaxLogFiles < 0 {
		return errors.New("max_log_files must be >= 0")
	}
	return nil
}

// Interval returns the check interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval * float64(time.Second))
}
