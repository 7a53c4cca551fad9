package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/entrhq/vocab/pkg/logging"
	"github.com/entrhq/vocab/pkg/overlay"
	"github.com/entrhq/vocab/pkg/types"
	"github.com/entrhq/vocab/pkg/wordinfo"
)

const (
	// frameInterval paces Manager.Tick.
	frameInterval = 16 * time.Millisecond

	// chromeRows are the rows below the bubble screen: status and help.
	chromeRows = 2

	// sizeStep is how much +/- change the bubble diameter.
	sizeStep = 5

	maxEventLog = 6
)

// uiMode is what currently has keyboard focus.
type uiMode int

const (
	modeBubble uiMode = iota
	modeAddWord
	modeFetching
	modeCard
	modeMenu
)

// model is the bubbletea model hosting the bubble.
type model struct {
	host     *termHost
	store    overlay.PositionStore
	manager  *overlay.Manager
	fetcher  wordinfo.Fetcher
	log      *logging.Logger
	now      func() time.Time
	settings overlay.Settings

	perm    *permissionToggle
	wake    *wakeIndicator
	haptics *hapticFlash

	// Bubble Tea components
	input   textinput.Model
	spinner spinner.Model

	mode    uiMode
	menu    quickMenu
	fetchID int
	card    *wordCard
	status  string
	events  []types.OverlayEvent

	// pointer capture: set by a press that landed on the bubble
	capturing bool
	pressID   int

	width  int
	height int
	ready  bool
}

// frameMsg drives animations.
type frameMsg time.Time

// longPressMsg fires when a press has been held for the long-press timeout.
type longPressMsg struct {
	id int
}

// wordInfoMsg carries a finished lookup.
type wordInfoMsg struct {
	id int
	wordinfo.Result
}

func newModel(store overlay.PositionStore, fetcher wordinfo.Fetcher, settings overlay.Settings, log *logging.Logger, now func() time.Time) *model {
	if log == nil {
		log = logging.Discard()
	}
	if now == nil {
		now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "word or phrase"
	ti.CharLimit = 64
	ti.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = headerStyle

	m := &model{
		host:     newTermHost(),
		store:    store,
		fetcher:  fetcher,
		log:      log,
		now:      now,
		settings: settings,
		perm:     &permissionToggle{granted: true},
		wake:     &wakeIndicator{},
		input:    ti,
		spinner:  sp,
		menu:     newQuickMenu(),
	}
	m.haptics = &hapticFlash{now: now}
	m.manager = m.newManager()
	return m
}

// newManager builds a Manager wired to this model. A simulated restart
// replaces the manager while keeping host, store and collaborators.
func (m *model) newManager() *overlay.Manager {
	return overlay.NewManager(m.host, m.store, overlay.Options{
		Permission:     m.perm,
		WakeLock:       m.wake,
		Haptics:        m.haptics,
		Logger:         m.log,
		OnTap:          m.openAddWord,
		OnQuickActions: m.openMenu,
		OnEvent:        m.recordEvent,
		Alpha:          m.settings.Alpha,
		Vibration:      m.settings.Vibration,
		Clock:          m.now,
	})
}

func (m *model) recordEvent(e types.OverlayEvent) {
	if e.IsError() {
		m.log.Warnf("overlay event %s: %v", e.Type, e.Error)
	} else {
		m.log.Debugf("overlay event %s at (%d,%d)", e.Type, e.X, e.Y)
	}
	m.events = append(m.events, e)
	if len(m.events) > maxEventLog {
		m.events = m.events[len(m.events)-maxEventLog:]
	}
	if e.Type == types.EventTypeDismissed {
		m.status = "bubble dismissed; press e to enable"
	}
}

func (m *model) openAddWord() {
	m.mode = modeAddWord
	m.input.Reset()
	m.input.Focus()
	m.status = ""
}

func (m *model) openMenu() {
	m.menu.reset()
	m.mode = modeMenu
}
