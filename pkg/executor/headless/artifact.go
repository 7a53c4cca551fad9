package headless

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/vocab/pkg/overlay"
)

// ArtifactWriter handles writing run artifacts
type ArtifactWriter struct {
	outputDir string
	config    ArtifactConfig
}

// NewArtifactWriter creates a new artifact writer
func NewArtifactWriter(outputDir string, config ArtifactConfig) *ArtifactWriter {
	return &ArtifactWriter{
		outputDir: outputDir,
		config:    config,
	}
}

// WriteAll writes all configured artifact formats
func (w *ArtifactWriter) WriteAll(summary *RunSummary) error {
	// Ensure output directory exists
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if w.config.JSON {
		if err := w.WriteResultsJSON(summary); err != nil {
			return fmt.Errorf("failed to write results JSON: %w", err)
		}
	}

	if w.config.Markdown {
		if err := w.WriteSummaryMarkdown(summary); err != nil {
			return fmt.Errorf("failed to write summary markdown: %w", err)
		}
	}

	return nil
}

// WriteResultsJSON writes the full run summary as JSON
func (w *ArtifactWriter) WriteResultsJSON(summary *RunSummary) error {
	path := filepath.Join(w.outputDir, "results.json")

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write results JSON: %w", writeErr)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *RunSummary) error {
	path := filepath.Join(w.outputDir, "summary.md")

	var md strings.Builder

	// Header
	md.WriteString("# Vocab Headless Scenario Summary\n\n")
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", summary.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration))
	md.WriteString(fmt.Sprintf("**Passed:** %d/%d\n\n", summary.Passed, summary.Total))

	// Scenarios
	md.WriteString("## Scenarios\n\n")
	md.WriteString("| Scenario | Result | Position | State |\n")
	md.WriteString("|---|---|---|---|\n")
	for _, result := range summary.Scenarios {
		status := "✅"
		if !result.Passed {
			status = "❌"
		}
		md.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			result.Name, status, formatPosition(result.Final.Position), result.Final.State))
	}
	md.WriteString("\n")

	// Failures
	var failed []ScenarioResult
	for _, result := range summary.Scenarios {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	if len(failed) > 0 {
		md.WriteString("## Failures\n\n")
		for _, result := range failed {
			md.WriteString(fmt.Sprintf("### %s\n\n", result.Name))
			if result.Error != "" {
				md.WriteString(fmt.Sprintf("- Error: %s\n", result.Error))
			}
			for _, f := range result.Failures {
				md.WriteString(fmt.Sprintf("- %s\n", f))
			}
			md.WriteString("\n")
		}
	}

	// Write file
	if writeErr := os.WriteFile(path, []byte(md.String()), 0600); writeErr != nil {
		return fmt.Errorf("failed to write summary markdown: %w", writeErr)
	}

	return nil
}

// RunSummary contains a complete summary of a headless run
type RunSummary struct {
	Status    string           `json:"status"`
	Error     string           `json:"error,omitempty"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Duration  time.Duration    `json:"duration"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// ScenarioResult is the outcome of one scenario
type ScenarioResult struct {
	Name     string        `json:"name"`
	Source   string        `json:"source,omitempty"`
	Passed   bool          `json:"passed"`
	Error    string        `json:"error,omitempty"`
	Failures []string      `json:"failures,omitempty"`
	Steps    int           `json:"steps"`
	Events   []string      `json:"events"`
	Final    FinalState    `json:"final"`
	Duration time.Duration `json:"duration"`
}

// FinalState is the observable bubble state when a scenario ended
type FinalState struct {
	Attached     bool             `json:"attached"`
	Enabled      bool             `json:"enabled"`
	Position     overlay.Position `json:"position"`
	Stored       overlay.Position `json:"stored"`
	State        string           `json:"state"`
	Taps         int              `json:"taps"`
	QuickActions int              `json:"quick_actions"`
	Dismissed    bool             `json:"dismissed"`
	Creates      int              `json:"creates"`
	Destroys     int              `json:"destroys"`
	Haptics      int              `json:"haptics"`
	WakeLock     bool             `json:"wake_lock"`
	ZoneVisible  bool             `json:"zone_visible"`
	ZoneArmed    bool             `json:"zone_armed"`
}
