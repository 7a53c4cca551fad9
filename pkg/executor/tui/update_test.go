package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/vocab/pkg/overlay"
	"github.com/entrhq/vocab/pkg/types"
	"github.com/entrhq/vocab/pkg/wordinfo"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type stubFetcher struct {
	info  *wordinfo.WordInfo
	err   error
	words []string
}

func (s *stubFetcher) FetchWordInfo(ctx context.Context, word string) (*wordinfo.WordInfo, error) {
	s.words = append(s.words, word)
	return s.info, s.err
}

type testUI struct {
	*testing.T
	m     *model
	store *overlay.MemoryStore
	now   time.Time
}

// newTestUI builds a model on a 100x92 terminal: a 1000x1800 unit screen
// with the bubble at its default (20,100), i.e. cells 2-5 x 5-6.
func newTestUI(t *testing.T, fetcher wordinfo.Fetcher) *testUI {
	t.Helper()
	ui := &testUI{T: t, store: overlay.NewMemoryStore(), now: t0}
	ui.m = newModel(ui.store, fetcher, overlay.Settings{Size: 40, Alpha: 1, Vibration: true}, nil, func() time.Time { return ui.now })
	ui.send(tea.WindowSizeMsg{Width: 100, Height: 92})
	require.Equal(t, overlay.Attached, ui.m.manager.State())
	return ui
}

func (ui *testUI) send(msg tea.Msg) tea.Cmd {
	_, cmd := ui.m.Update(msg)
	return cmd
}

func (ui *testUI) at(ms int) { ui.now = t0.Add(time.Duration(ms) * time.Millisecond) }

func (ui *testUI) key(s string) tea.Cmd {
	switch s {
	case "esc":
		return ui.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "enter":
		return ui.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "tab":
		return ui.send(tea.KeyMsg{Type: tea.KeyTab})
	}
	return ui.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (ui *testUI) mouse(action tea.MouseAction, col, row int) tea.Cmd {
	return ui.send(tea.MouseMsg{X: col, Y: row, Action: action, Button: tea.MouseButtonLeft})
}

func (ui *testUI) frame(ms int) {
	ui.at(ms)
	ui.send(frameMsg(ui.now))
}

func TestTapOpensAddWord(t *testing.T) {
	ui := newTestUI(t, nil)

	cmd := ui.mouse(tea.MouseActionPress, 3, 5)
	assert.NotNil(t, cmd, "press on the bubble schedules a long-press check")
	assert.True(t, ui.m.capturing)

	ui.at(80)
	ui.mouse(tea.MouseActionRelease, 3, 5)

	assert.False(t, ui.m.capturing)
	assert.Equal(t, modeAddWord, ui.m.mode)
	assert.Equal(t, 1, ui.m.haptics.count)
}

func TestPressOffBubbleIsIgnored(t *testing.T) {
	ui := newTestUI(t, nil)

	assert.Nil(t, ui.mouse(tea.MouseActionPress, 40, 40))
	assert.False(t, ui.m.capturing)
	assert.Equal(t, overlay.Idle, ui.m.manager.Controller().State())
}

func TestDragIntoArmedZoneDismisses(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.mouse(tea.MouseActionPress, 3, 5)
	ui.at(50)
	ui.mouse(tea.MouseActionMotion, 50, 85)
	assert.Equal(t, overlay.Dragging, ui.m.manager.Controller().State())
	assert.Equal(t, overlay.Position{X: 490, Y: 1700}, ui.m.manager.Controller().Position())

	ui.frame(320)
	assert.True(t, ui.m.manager.Controller().DeleteZone().Armed)

	ui.at(350)
	ui.mouse(tea.MouseActionRelease, 50, 85)

	assert.Equal(t, overlay.Detached, ui.m.manager.State())
	assert.Equal(t, 0, ui.m.host.count())
	assert.False(t, ui.store.IsFeatureEnabled())
	assert.Contains(t, ui.m.status, "dismissed")

	ui.key("e")
	assert.Equal(t, overlay.Attached, ui.m.manager.State())
	assert.True(t, ui.store.IsFeatureEnabled())
}

func TestDragReleaseSnapsToEdge(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.mouse(tea.MouseActionPress, 3, 5)
	ui.at(40)
	ui.mouse(tea.MouseActionMotion, 80, 30)
	ui.at(60)
	ui.mouse(tea.MouseActionRelease, 80, 30)
	require.Equal(t, overlay.Settling, ui.m.manager.Controller().State())

	for ms := 76; ms <= 600; ms += 16 {
		ui.frame(ms)
	}
	assert.Equal(t, overlay.Idle, ui.m.manager.Controller().State())

	pos := ui.m.manager.Controller().Position()
	assert.Equal(t, 1000-40-overlay.EdgeMargin, pos.X)
	assert.Equal(t, pos, ui.store.Saves()[len(ui.store.Saves())-1])
}

func TestLongPressOpensMenu(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.mouse(tea.MouseActionPress, 3, 5)
	ui.at(500)
	ui.send(longPressMsg{id: ui.m.pressID})
	assert.Equal(t, modeMenu, ui.m.mode)

	// a stale timer from an earlier press does nothing
	ui.m.mode = modeBubble
	ui.send(longPressMsg{id: ui.m.pressID - 1})
	assert.Equal(t, modeBubble, ui.m.mode)
}

func TestMenuActions(t *testing.T) {
	t.Run("disable", func(t *testing.T) {
		ui := newTestUI(t, nil)
		ui.m.openMenu()
		ui.key("d")
		assert.Equal(t, modeBubble, ui.m.mode)
		assert.Equal(t, overlay.Detached, ui.m.manager.State())
		assert.False(t, ui.store.IsFeatureEnabled())
	})

	t.Run("navigate to add word", func(t *testing.T) {
		ui := newTestUI(t, nil)
		ui.m.openMenu()
		ui.send(tea.KeyMsg{Type: tea.KeyDown})
		ui.send(tea.KeyMsg{Type: tea.KeyUp})
		ui.key("enter")
		assert.Equal(t, modeAddWord, ui.m.mode)
	})

	t.Run("escape closes", func(t *testing.T) {
		ui := newTestUI(t, nil)
		ui.m.openMenu()
		ui.key("esc")
		assert.Equal(t, modeBubble, ui.m.mode)
		assert.Equal(t, overlay.Attached, ui.m.manager.State())
	})
}

func TestAddWordLookup(t *testing.T) {
	fetcher := &stubFetcher{info: &wordinfo.WordInfo{OriginalWord: "cat", Translation: "кіт", Level: "A1"}}
	ui := newTestUI(t, fetcher)

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	ui.m.openAddWord()
	ui.key("cat")
	cmd := ui.key("enter")
	require.NotNil(t, cmd)
	assert.Equal(t, modeFetching, ui.m.mode)

	msg := ui.m.fetch(ui.m.fetchID, "cat")()
	ui.send(msg)

	assert.Equal(t, []string{"cat"}, fetcher.words)
	assert.Equal(t, modeCard, ui.m.mode)
	require.NotNil(t, ui.m.card)
	assert.Equal(t, "кіт", ui.m.card.info.Translation)

	ui.key("c")
	assert.Equal(t, "кіт", copied)
	assert.Contains(t, ui.m.status, "copied")

	ui.key("tab")
	assert.True(t, ui.m.card.rawJSON)
	assert.NotEmpty(t, ui.m.View())

	ui.key("esc")
	assert.Equal(t, modeBubble, ui.m.mode)
	assert.Nil(t, ui.m.card)
}

func TestAddWordEdgeCases(t *testing.T) {
	t.Run("blank word stays in prompt", func(t *testing.T) {
		ui := newTestUI(t, &stubFetcher{})
		ui.m.openAddWord()
		assert.Nil(t, ui.key("enter"))
		assert.Equal(t, modeAddWord, ui.m.mode)
	})

	t.Run("no backend", func(t *testing.T) {
		ui := newTestUI(t, nil)
		ui.m.openAddWord()
		ui.key("cat")
		ui.key("enter")
		assert.Equal(t, modeCard, ui.m.mode)
		assert.Error(t, ui.m.card.err)
	})

	t.Run("failed lookup shows error card", func(t *testing.T) {
		ui := newTestUI(t, &stubFetcher{err: errors.New("boom")})
		ui.m.openAddWord()
		ui.key("cat")
		ui.key("enter")
		ui.send(ui.m.fetch(ui.m.fetchID, "cat")())
		assert.Equal(t, modeCard, ui.m.mode)
		assert.Contains(t, ui.m.dialogView(), "boom")
	})

	t.Run("cancelled lookup result is dropped", func(t *testing.T) {
		ui := newTestUI(t, &stubFetcher{info: &wordinfo.WordInfo{OriginalWord: "a", Translation: "b"}})
		ui.m.openAddWord()
		ui.key("cat")
		ui.key("enter")
		id := ui.m.fetchID
		ui.key("esc")
		assert.Equal(t, modeBubble, ui.m.mode)

		ui.send(wordInfoMsg{id: id, Result: wordinfo.Result{Word: "cat"}})
		assert.Equal(t, modeBubble, ui.m.mode)
	})
}

func TestSignalKeys(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.key("s")
	assert.Equal(t, overlay.Detached, ui.m.manager.State())
	assert.False(t, ui.m.wake.held)

	ui.key("p")
	ui.key("o")
	assert.Equal(t, overlay.Detached, ui.m.manager.State(), "permission revoked")

	ui.key("p")
	ui.key("u")
	assert.Equal(t, overlay.Attached, ui.m.manager.State())
	assert.True(t, ui.m.wake.held)
	assert.Equal(t, 1, ui.m.host.count())

	ui.key("x")
	assert.Equal(t, overlay.Detached, ui.m.manager.State())
	assert.False(t, ui.store.IsFeatureEnabled())
}

func TestScreenOffMidDragEndsGesture(t *testing.T) {
	ui := newTestUI(t, nil)
	ui.mouse(tea.MouseActionPress, 3, 5)
	ui.at(40)
	ui.mouse(tea.MouseActionMotion, 30, 30)
	last := ui.m.manager.Controller().Position()

	ui.key("s")
	assert.False(t, ui.m.capturing)
	assert.Equal(t, 0, ui.m.host.count())

	loaded, err := ui.store.Load()
	require.NoError(t, err)
	assert.Equal(t, last, loaded)
}

func TestRestartRestoresPosition(t *testing.T) {
	ui := newTestUI(t, nil)
	ui.mouse(tea.MouseActionPress, 3, 5)
	ui.at(40)
	ui.mouse(tea.MouseActionMotion, 30, 40)
	ui.at(60)
	ui.mouse(tea.MouseActionRelease, 30, 40)
	ui.frame(120)
	ui.frame(200)
	saved := ui.store.Saves()[len(ui.store.Saves())-1]

	old := ui.m.manager
	ui.key("r")

	assert.NotSame(t, old, ui.m.manager)
	assert.Equal(t, overlay.Attached, ui.m.manager.State())
	assert.Equal(t, 1, ui.m.host.count())
	assert.Equal(t, saved, ui.m.manager.Controller().Position())
	assert.True(t, strings.HasPrefix(ui.m.status, "restarted"))
}

func TestResizeKeys(t *testing.T) {
	ui := newTestUI(t, nil)

	ui.key("+")
	size, _ := ui.store.LoadSize()
	assert.Equal(t, 45, size)
	assert.Equal(t, 45, ui.m.manager.Attachment().Size.Width)
	assert.Equal(t, 1, ui.m.host.count())

	for i := 0; i < 10; i++ {
		ui.key("-")
	}
	size, _ = ui.store.LoadSize()
	assert.Equal(t, overlay.MinOverlaySize, size)
}

func TestQuit(t *testing.T) {
	ui := newTestUI(t, nil)
	cmd := ui.key("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEventLogIsBounded(t *testing.T) {
	ui := newTestUI(t, nil)
	for i := 0; i < 20; i++ {
		ui.m.recordEvent(types.NewOverlayEvent(types.EventTypeTap, t0, 0, 0))
	}
	assert.Len(t, ui.m.events, maxEventLog)
}
