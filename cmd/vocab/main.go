// Package main provides the Vocab floating-bubble application.
// The bubble floats over the terminal like a chat head: drag it around, drop
// it on the delete zone to switch it off, or tap it to look up a word.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	appconfig "github.com/entrhq/vocab/pkg/config"
	"github.com/entrhq/vocab/pkg/executor/tui"
	"github.com/entrhq/vocab/pkg/logging"
	"github.com/entrhq/vocab/pkg/wordinfo"
)

const version = "0.1.0" // Version of the Vocab application

// Config holds the application configuration
type Config struct {
	ConfigPath     string
	APIKey         string
	BaseURL        string
	Model          string
	LogLevel       string
	ShowVersion    bool
	Headless       bool
	HeadlessConfig string
	Scenarios      string
	Select         string
	Verbosity      string
}

func main() {
	// Parse command line flags
	config := parseFlags()

	// Show version if requested
	if config.ShowVersion {
		fmt.Printf("Vocab v%s\n", version)
		return
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Run the application
	if runErr := run(ctx, config); runErr != nil {
		cancel()
		log.Printf("Application error: %v", runErr)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags and environment variables
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.ConfigPath, "config", "", "Path to the config file (default: ~/.vocab/config.json; .yaml/.yml files are YAML)")
	flag.StringVar(&config.APIKey, "api-key", "", "OpenAI API key for word lookups (or set OPENAI_API_KEY env var)")
	flag.StringVar(&config.BaseURL, "base-url", "", "OpenAI API base URL (or set OPENAI_BASE_URL env var)")
	flag.StringVar(&config.Model, "model", "", "Model used for word lookups (default: "+wordinfo.DefaultModel+")")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log file level: debug, info, warn or error")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")
	flag.BoolVar(&config.Headless, "headless", false, "Run scripted bubble scenarios instead of the TUI")
	flag.StringVar(&config.HeadlessConfig, "headless-config", "", "Path to headless run configuration file (YAML)")
	flag.StringVar(&config.Scenarios, "scenarios", "examples/scenarios", "Scenario file or directory for headless mode")
	flag.StringVar(&config.Select, "select", "", "Glob selecting scenarios by name, e.g. 'drag/*'")
	flag.StringVar(&config.Verbosity, "verbosity", "", "Headless output: quiet, normal, verbose or debug")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Vocab - a floating vocabulary bubble\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vocab [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_API_KEY     OpenAI API key\n")
		fmt.Fprintf(os.Stderr, "  OPENAI_BASE_URL    OpenAI API base URL (for compatible APIs)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # TUI Mode (default)\n")
		fmt.Fprintf(os.Stderr, "  vocab\n")
		fmt.Fprintf(os.Stderr, "  vocab -model gpt-4o-mini\n")
		fmt.Fprintf(os.Stderr, "  vocab -config ./vocab.yaml\n")
		fmt.Fprintf(os.Stderr, "\n  # Headless Mode (CI)\n")
		fmt.Fprintf(os.Stderr, "  vocab -headless -scenarios examples/scenarios -select 'drag/*'\n")
		fmt.Fprintf(os.Stderr, "  vocab -headless -headless-config headless.yaml\n")
	}

	flag.Parse()
	return config
}

// validate checks that the configuration is valid
func (c *Config) validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !c.Headless && (c.HeadlessConfig != "" || c.Select != "") {
		return fmt.Errorf("-headless-config and -select require -headless")
	}
	return nil
}

// run executes the main application logic
func run(ctx context.Context, config *Config) error {
	// Check if headless mode is requested
	if config.Headless {
		return runHeadless(ctx, config)
	}

	// Run TUI mode (default)
	return runTUI(ctx, config)
}

// runTUI executes the TUI mode
func runTUI(ctx context.Context, config *Config) error {
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	logger, err := logging.NewLogger("vocab")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()
	level, _ := logging.ParseLevel(config.LogLevel)
	logger.SetLevel(level)

	store, err := appconfig.NewPositionStore(appconfig.Global(), appconfig.WithStoreLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to open position store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Errorf("failed to save configuration: %v", closeErr)
		}
	}()

	// A missing API key only disables lookups; the bubble still works.
	var fetcher wordinfo.Fetcher
	client, err := appconfig.BuildWordInfoClient(config.Model, config.BaseURL, config.APIKey)
	if err != nil {
		logger.Warnf("word lookups disabled: %v", err)
	} else {
		fetcher = client
		logger.Infof("word lookups via %s (%s)", client.BaseURL(), client.Model())
	}

	executor := tui.NewExecutor(store, fetcher, appconfig.GetBubble().Settings(), logger)
	if err := executor.Run(ctx); err != nil {
		return fmt.Errorf("executor error: %w", err)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		logger.Infof("interrupted")
	}
	return nil
}
