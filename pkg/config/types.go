package config

import "github.com/perbu/vstestrun/pkg/vstest"

// Config represents the complete application configuration
type Config struct {
	// RunConfiguration holds the vstest.console options; its keys sit at the top level
	vstest.RunConfiguration `yaml:",inline"`
	// RunnerPath overrides the vstest.console location derived from
	// package_cache_root and runner_version
	RunnerPath string `yaml:"runner_path,omitempty"`
	// Log controls the structured logger
	Log LogConfig `yaml:"log,omitempty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// Format is text or json
	Format string `yaml:"format,omitempty"`
}

// ResolveRunnerPath returns the runner executable to start
func (c *Config) ResolveRunnerPath() string {
	if c.RunnerPath != "" {
		return c.RunnerPath
	}
	return vstest.ExecutablePath(c.PackageCacheRoot, c.RunnerVersion)
}
