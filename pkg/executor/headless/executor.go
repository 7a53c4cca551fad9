package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/entrhq/vocab/pkg/logging"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

// ErrScenariosFailed is returned by Run when at least one scenario failed.
var ErrScenariosFailed = errors.New("headless: scenarios failed")

// Executor implements the headless scenario runner
type Executor struct {
	config         *Config
	logger         *Logger
	matcher        *PatternMatcher
	artifactWriter *ArtifactWriter

	summary *RunSummary
}

// NewExecutor creates a new headless executor
func NewExecutor(config *Config) (*Executor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	matcher, err := NewPatternMatcher(config.Select.Include, config.Select.Exclude)
	if err != nil {
		return nil, err
	}

	return &Executor{
		config:         config,
		logger:         NewLogger(parseLogLevel(config.Logging.Verbosity)),
		matcher:        matcher,
		artifactWriter: NewArtifactWriter(config.Artifacts.OutputDir, config.Artifacts),
		summary:        &RunSummary{Status: "running"},
	}, nil
}

// SetOutput redirects progress output
func (e *Executor) SetOutput(w io.Writer) {
	e.logger.SetWriter(w)
}

// Summary returns the summary of the last run
func (e *Executor) Summary() *RunSummary {
	return e.summary
}

// Run loads, selects and plays every scenario. It returns ErrScenariosFailed
// when any expectation failed and another error when no scenario could run.
func (e *Executor) Run(ctx context.Context) error {
	e.summary.StartTime = time.Now()
	e.logger.Header("Vocab Headless Scenarios")

	scenarios, err := LoadScenarios(e.config.Scenarios)
	if err != nil {
		return e.fail(err)
	}
	selected := e.matcher.Filter(scenarios)
	if len(selected) == 0 {
		return e.fail(fmt.Errorf("no scenarios selected out of %d loaded", len(scenarios)))
	}
	e.logger.Infof("Running %d of %d scenarios", len(selected), len(scenarios))

	stepLog := e.stepLogger()
	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return e.fail(fmt.Errorf("run cancelled: %w", err))
		}

		e.logger.Step(s.Name)
		if s.Description != "" {
			e.logger.Verbosef("%s", s.Description)
		}

		result := RunScenario(s, stepLog)
		e.record(result)
		e.logger.ScenarioResult(result)

		if !result.Passed && e.config.FailFast {
			e.logger.Warningf("stopping after first failure")
			break
		}
	}

	return e.finish()
}

// stepLogger routes overlay diagnostics into the progress output. Debug
// verbosity shows every overlay event; otherwise only errors.
func (e *Executor) stepLogger() *logging.Logger {
	l := logging.New("scenario", e.logger.writer)
	switch e.logger.Level() {
	case LogLevelDebug:
		l.SetLevel(logging.LevelDebug)
	case LogLevelVerbose:
		l.SetLevel(logging.LevelWarn)
	default:
		l.SetLevel(logging.LevelError)
	}
	return l
}

func (e *Executor) record(result ScenarioResult) {
	e.summary.Scenarios = append(e.summary.Scenarios, result)
	e.summary.Total++
	if result.Passed {
		e.summary.Passed++
	} else {
		e.summary.Failed++
	}
}

func (e *Executor) finish() error {
	e.summary.EndTime = time.Now()
	e.summary.Duration = e.summary.EndTime.Sub(e.summary.StartTime)
	e.summary.Status = statusSuccess
	if e.summary.Failed > 0 {
		e.summary.Status = statusFailed
	}

	e.writeArtifacts()
	e.logger.Summary(e.summary)

	if e.summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, e.summary.Failed, e.summary.Total)
	}
	return nil
}

func (e *Executor) fail(err error) error {
	e.summary.EndTime = time.Now()
	e.summary.Duration = e.summary.EndTime.Sub(e.summary.StartTime)
	e.summary.Status = statusFailed
	e.summary.Error = err.Error()

	e.logger.Errorf("%v", err)
	e.writeArtifacts()
	e.logger.Summary(e.summary)
	return err
}

func (e *Executor) writeArtifacts() {
	if !e.config.Artifacts.Enabled {
		return
	}
	if err := e.artifactWriter.WriteAll(e.summary); err != nil {
		e.logger.Warningf("failed to write artifacts: %v", err)
		return
	}
	e.logger.Verbosef("artifacts written to %s", e.config.Artifacts.OutputDir)
}
