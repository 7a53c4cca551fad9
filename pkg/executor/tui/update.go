package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/vocab/pkg/overlay"
	"github.com/entrhq/vocab/pkg/types"
	"github.com/entrhq/vocab/pkg/wordinfo"
)

const fetchTimeout = 30 * time.Second

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init starts the frame clock. The bubble attaches on the first window size.
func (m *model) Init() tea.Cmd {
	return frameTick()
}

// Update handles all state updates for the TUI model.
// Pointer receiver: manager callbacks hold on to m.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.resize(msg.Width, msg.Height-chromeRows)
		if !m.ready {
			m.ready = true
			m.manager.Handle(overlay.AppStarted)
		}
		return m, nil

	case frameMsg:
		m.manager.Tick(time.Time(msg))
		return m, frameTick()

	case longPressMsg:
		if m.capturing && msg.id == m.pressID {
			m.manager.LongPress(m.now())
		}
		return m, nil

	case wordInfoMsg:
		return m, m.handleWordInfo(msg)

	case spinner.TickMsg:
		if m.mode != modeFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAddWord:
			return m, m.handleAddWordKey(msg)
		case modeFetching:
			if msg.String() == "esc" {
				return m, m.dispatch(types.NewCancelInput())
			}
			return m, nil
		case modeCard:
			return m, m.handleCardKey(msg)
		case modeMenu:
			return m, m.handleMenuKey(msg)
		default:
			return m, m.handleBubbleKey(msg)
		}
	}
	return m, nil
}

// handleMouse maps terminal mouse reports to pointer events. Only a press on
// the bubble starts a gesture; the gesture then owns the pointer until release.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := m.pointerUnits(msg.X, msg.Y)
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.mode != modeBubble || msg.Y >= m.height-chromeRows {
			return nil
		}
		if !m.host.hit(x, y) {
			return nil
		}
		if !m.manager.HandlePointer(overlay.PointerEvent{Action: overlay.PointerDown, X: x, Y: y, At: now}) {
			return nil
		}
		m.capturing = true
		m.pressID++
		id := m.pressID
		return tea.Tick(overlay.LongPressTimeout, func(time.Time) tea.Msg {
			return longPressMsg{id: id}
		})

	case tea.MouseActionMotion:
		if m.capturing {
			m.manager.HandlePointer(overlay.PointerEvent{Action: overlay.PointerMove, X: x, Y: y, At: now})
		}

	case tea.MouseActionRelease:
		if m.capturing {
			m.capturing = false
			m.manager.HandlePointer(overlay.PointerEvent{Action: overlay.PointerUp, X: x, Y: y, At: now})
		}
	}
	return nil
}

// pointerUnits converts a cell to overlay units, clamped to the bubble screen.
func (m *model) pointerUnits(col, row int) (float64, float64) {
	x, y := cellCenter(col, row)
	screen := m.host.ScreenSize()
	if screen.Width > 0 && x > float64(screen.Width-1) {
		x = float64(screen.Width - 1)
	}
	if screen.Height > 0 && y > float64(screen.Height-1) {
		y = float64(screen.Height - 1)
	}
	return x, y
}

func (m *model) handleBubbleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "s":
		m.signal(overlay.ScreenOff)
	case "o":
		m.signal(overlay.ScreenOn)
	case "u":
		m.signal(overlay.UserPresent)
	case "x":
		m.signal(overlay.StopRequested)
	case "e":
		m.status = "enable: " + m.manager.Enable().String()
	case "r":
		m.restart()
	case "p":
		if m.perm.toggle() {
			m.status = "overlay permission granted"
		} else {
			m.status = "overlay permission revoked"
		}
	case "+", "=":
		m.resize(sizeStep)
	case "-", "_":
		m.resize(-sizeStep)
	}
	return nil
}

func (m *model) signal(sig overlay.Signal) {
	state := m.manager.Handle(sig)
	if state == overlay.Detached {
		m.capturing = false
	}
	m.status = fmt.Sprintf("%s: %s", sig, state)
}

// restart simulates a process restart over the same store: surfaces vanish
// without a detach, and a fresh manager attaches from the store.
func (m *model) restart() {
	m.log.Infof("simulating process restart")
	m.host.dropAll()
	m.wake.Release()
	m.capturing = false
	m.mode = modeBubble

	m.manager = m.newManager()
	state := m.manager.Handle(overlay.AppStarted)
	pos := m.manager.Controller().Position()
	m.status = fmt.Sprintf("restarted: %s at (%d,%d)", state, pos.X, pos.Y)
}

func (m *model) resize(delta int) {
	m.settings.Size = overlay.ClampOverlaySize(m.settings.Size + delta)
	m.manager.Reconfigure(m.settings)
	m.status = fmt.Sprintf("size %d", m.settings.Size)
}

func (m *model) handleAddWordKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.dispatch(types.NewCancelInput())
	case "enter":
		return m.dispatch(types.NewAddWordInput(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) handleCardKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "q":
		return m.dispatch(types.NewCancelInput())
	case "tab", "j":
		if m.card != nil && m.card.err == nil {
			m.card.rawJSON = !m.card.rawJSON
		}
	case "c":
		if m.card == nil || m.card.err != nil {
			return nil
		}
		if err := m.card.copyTranslation(); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "copied " + m.card.info.Translation
		}
	}
	return nil
}

func (m *model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "up", "k":
		m.menu.up()
	case "down", "j":
		m.menu.down()
	case "enter":
		return m.dispatch(m.menu.selected())
	case "esc":
		return m.dispatch(types.NewQuickActionInput(types.QuickActionClose))
	default:
		if in := m.menu.byKey(key); in != nil {
			return m.dispatch(in)
		}
	}
	return nil
}

// dispatch applies one user response from a prompt or menu.
func (m *model) dispatch(in *types.Input) tea.Cmd {
	switch in.Type {
	case types.InputTypeCancel:
		m.closeDialog()

	case types.InputTypeAddWord:
		word := strings.TrimSpace(in.Content)
		if word == "" {
			m.status = "type a word first"
			return nil
		}
		m.input.Blur()
		if m.fetcher == nil {
			m.card = &wordCard{word: word, err: fmt.Errorf("no word lookup backend configured (set OPENAI_API_KEY)")}
			m.mode = modeCard
			return nil
		}
		m.mode = modeFetching
		m.fetchID++
		return tea.Batch(m.spinner.Tick, m.fetch(m.fetchID, word))

	case types.InputTypeQuickAction:
		switch in.Content {
		case types.QuickActionAddWord:
			m.openAddWord()
		case types.QuickActionDisable:
			m.closeDialog()
			m.signal(overlay.StopRequested)
		default:
			m.closeDialog()
		}
	}
	return nil
}

func (m *model) closeDialog() {
	m.mode = modeBubble
	m.input.Blur()
	m.card = nil
}

func (m *model) fetch(id int, word string) tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return wordInfoMsg{id: id, Result: <-wordinfo.FetchAsync(ctx, fetcher, word)}
	}
}

func (m *model) handleWordInfo(msg wordInfoMsg) tea.Cmd {
	if m.mode != modeFetching || msg.id != m.fetchID {
		// cancelled or superseded while in flight
		return nil
	}
	if msg.Err != nil {
		m.log.Warnf("lookup of %q failed: %v", msg.Word, msg.Err)
	} else {
		m.log.Infof("looked up %q: %s", msg.Word, msg.Info.Translation)
	}
	m.card = &wordCard{word: msg.Word, info: msg.Info, err: msg.Err}
	m.mode = modeCard
	return nil
}
