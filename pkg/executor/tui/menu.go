package tui

import (
	"strings"

	"github.com/entrhq/vocab/pkg/types"
)

type menuItem struct {
	key    string
	label  string
	action string
}

// quickMenu is the long-press menu.
type quickMenu struct {
	items  []menuItem
	cursor int
}

func newQuickMenu() quickMenu {
	return quickMenu{items: []menuItem{
		{key: "a", label: "Add word", action: types.QuickActionAddWord},
		{key: "d", label: "Disable bubble", action: types.QuickActionDisable},
		{key: "c", label: "Close", action: types.QuickActionClose},
	}}
}

func (q *quickMenu) reset() { q.cursor = 0 }

func (q *quickMenu) up() {
	if q.cursor > 0 {
		q.cursor--
	}
}

func (q *quickMenu) down() {
	if q.cursor < len(q.items)-1 {
		q.cursor++
	}
}

// selected returns the input for the highlighted entry.
func (q *quickMenu) selected() *types.Input {
	return types.NewQuickActionInput(q.items[q.cursor].action)
}

// byKey returns the input for a hotkey, or nil.
func (q *quickMenu) byKey(key string) *types.Input {
	for _, item := range q.items {
		if item.key == key {
			return types.NewQuickActionInput(item.action)
		}
	}
	return nil
}

func (q *quickMenu) view() string {
	var b strings.Builder
	b.WriteString(OverlayTitleStyle.Render("Quick actions"))
	b.WriteString("\n\n")
	for i, item := range q.items {
		line := "[" + item.key + "] " + item.label
		if i == q.cursor {
			b.WriteString(menuSelectedStyle.Render("› " + line))
		} else {
			b.WriteString(menuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(OverlayHelpStyle.Render("↑/↓ select • enter confirm • esc close"))
	return dialogStyle.Render(b.String())
}
