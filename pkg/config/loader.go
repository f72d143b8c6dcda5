package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML configuration file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	return &cfg, nil
}

// validate checks that required fields are present and valid.
// The test file is not checked here: a missing one is reported when the
// arguments are built.
func validate(cfg *Config) error {
	if cfg.RunnerVersion == "" && cfg.RunnerPath == "" {
		return fmt.Errorf("runner_version is required")
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}
	if cfg.Log.Level != "" {
		if _, err := ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	return nil
}

// applyDefaults sets default values for optional fields
func applyDefaults(cfg *Config) error {
	if cfg.PackageCacheRoot == "" {
		cfg.PackageCacheRoot = os.Getenv("NUGET_PACKAGES")
	}
	if cfg.PackageCacheRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locating package cache: %w", err)
		}
		cfg.PackageCacheRoot = filepath.Join(home, ".nuget", "packages")
	}
	root, err := expandHome(cfg.PackageCacheRoot)
	if err != nil {
		return fmt.Errorf("expanding package_cache_root: %w", err)
	}
	cfg.PackageCacheRoot = root

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return nil
}

// expandHome replaces a leading ~/ with the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", level)
}
