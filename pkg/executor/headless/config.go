package headless

import (
	"fmt"
	"strings"
)

// Config represents the configuration for a headless scenario run
type Config struct {
	// Scenario files or directories to load
	Scenarios []string `yaml:"scenarios" json:"scenarios"`

	// Selection of scenarios by name
	Select SelectConfig `yaml:"select" json:"select"`

	// Stop after the first failing scenario
	FailFast bool `yaml:"fail_fast" json:"fail_fast"`

	// Artifacts configuration
	Artifacts ArtifactConfig `yaml:"artifacts" json:"artifacts"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SelectConfig filters scenarios by name using glob patterns
type SelectConfig struct {
	Include []string `yaml:"include" json:"include"`
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls logging level: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// ArtifactConfig defines artifact generation configuration
type ArtifactConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Individual format flags
	JSON     bool `yaml:"json" json:"json"`
	Markdown bool `yaml:"markdown" json:"markdown"`
}

// DefaultConfig returns a config that runs every scenario under dir and
// writes JSON results to .vocab/headless.
func DefaultConfig(dir string) *Config {
	return &Config{
		Scenarios: []string{dir},
		Artifacts: ArtifactConfig{
			Enabled:   true,
			OutputDir: ".vocab/headless",
			JSON:      true,
			Markdown:  true,
		},
		Logging: LoggingConfig{Verbosity: "normal"},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario path is required")
	}
	for _, path := range c.Scenarios {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("scenario path cannot be empty")
		}
	}

	if c.Artifacts.Enabled && c.Artifacts.OutputDir == "" {
		return fmt.Errorf("artifacts output_dir is required when artifacts are enabled")
	}

	switch c.Logging.Verbosity {
	case "", "quiet", "normal", "verbose", "debug":
	default:
		return fmt.Errorf("invalid verbosity: %s (must be quiet, normal, verbose or debug)", c.Logging.Verbosity)
	}

	if _, err := NewPatternMatcher(c.Select.Include, c.Select.Exclude); err != nil {
		return err
	}
	return nil
}
