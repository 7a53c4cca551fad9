package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/entrhq/vocab/pkg/executor/headless"
	"gopkg.in/yaml.v3"
)

// runHeadless executes the scripted scenarios
func runHeadless(ctx context.Context, config *Config) error {
	execConfig, err := loadHeadlessConfig(config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	executor, err := headless.NewExecutor(execConfig)
	if err != nil {
		return err
	}
	return executor.Run(ctx)
}

// loadHeadlessConfig reads the YAML run config, if any, and applies CLI
// overrides on top of it.
func loadHeadlessConfig(config *Config) (*headless.Config, error) {
	execConfig := headless.DefaultConfig(config.Scenarios)

	if config.HeadlessConfig != "" {
		data, err := os.ReadFile(config.HeadlessConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, execConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if config.Select != "" {
		execConfig.Select.Include = strings.Split(config.Select, ",")
	}
	if config.Verbosity != "" {
		execConfig.Logging.Verbosity = config.Verbosity
	}
	return execConfig, nil
}
