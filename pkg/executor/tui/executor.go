// Package tui hosts the floating bubble in a terminal.
//
// The terminal stands in for a phone screen: the bubble is a small block of
// cells you can drag with the mouse, fling towards the delete zone at the
// bottom, or tap to add a word. Keys simulate the device signals (screen off,
// unlock, restart) that drive the overlay lifecycle.
//
// The package is split into:
// - executor.go: program lifecycle
// - model.go: model state and manager wiring
// - host.go: overlay.Host over the cell grid
// - update.go: Bubble Tea Update and input mapping
// - view.go: screen composition
// - wordcard.go: add-word results
// - menu.go: quick actions
// - styles.go: palette
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/vocab/pkg/logging"
	"github.com/entrhq/vocab/pkg/overlay"
	"github.com/entrhq/vocab/pkg/wordinfo"
)

// Executor runs the bubble inside an alt-screen terminal program.
type Executor struct {
	store    overlay.PositionStore
	fetcher  wordinfo.Fetcher
	settings overlay.Settings
	log      *logging.Logger
	program  *tea.Program
}

// NewExecutor creates a terminal executor. fetcher may be nil, in which case
// the add-word prompt reports that no lookup backend is configured.
func NewExecutor(store overlay.PositionStore, fetcher wordinfo.Fetcher, settings overlay.Settings, log *logging.Logger) *Executor {
	return &Executor{
		store:    store,
		fetcher:  fetcher,
		settings: settings,
		log:      log,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.store, e.fetcher, e.settings, e.log, nil)
	m.log.Infof("terminal host starting")

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := e.program.Run()

	// leave the enabled flag alone: quitting is not a dismissal
	m.manager.Close()
	m.log.Infof("terminal host stopped")

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}
