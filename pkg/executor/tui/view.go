package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/vocab/pkg/overlay"
)

// gridCell is one painted terminal cell.
type gridCell struct {
	ch    rune
	style cellStyle
}

type grid struct {
	cols, rows int
	cells      [][]gridCell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: max(cols, 0), rows: max(rows, 0)}
	g.cells = make([][]gridCell, g.rows)
	for r := range g.cells {
		row := make([]gridCell, g.cols)
		for c := range row {
			row[c] = gridCell{ch: ' '}
		}
		g.cells[r] = row
	}
	return g
}

func (g *grid) set(col, row int, ch rune, style cellStyle) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row][col] = gridCell{ch: ch, style: style}
}

// String renders the grid, styling runs of equal cells together.
func (g *grid) String() string {
	lines := make([]string, g.rows)
	for r, row := range g.cells {
		var b strings.Builder
		start := 0
		for c := 1; c <= len(row); c++ {
			if c < len(row) && row[c].style == row[start].style {
				continue
			}
			run := make([]rune, 0, c-start)
			for _, cell := range row[start:c] {
				run = append(run, cell.ch)
			}
			if row[start].style == cellBlank {
				b.WriteString(string(run))
			} else {
				b.WriteString(cellStyles[row[start].style].Render(string(run)))
			}
			start = c
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// View renders the bubble screen plus status and help lines.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	rows := max(m.height-chromeRows, 0)
	screen := m.renderScreen(m.width, rows)
	if dialog := m.dialogView(); dialog != "" {
		screen = lipgloss.Place(
			m.width,
			rows,
			lipgloss.Center,
			lipgloss.Center,
			dialog,
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	return screen + "\n" + m.statusLine() + "\n" + m.helpLine()
}

// renderScreen draws the delete zone and every surface into a fresh grid.
func (m *model) renderScreen(cols, rows int) string {
	g := newGrid(cols, rows)
	surfaces, zone, _ := m.host.snapshot()

	drawZone(g, zone)
	for _, s := range surfaces {
		drawBubble(g, s, m.haptics.active())
	}
	return g.String()
}

func drawZone(g *grid, z overlay.DeleteZoneAppearance) {
	if !z.Visible || z.Alpha < 0.2 {
		return
	}
	w := spanCells(int(math.Round(float64(z.Size.Width)*z.Scale)), colUnits)
	h := spanCells(int(math.Round(float64(z.Size.Height)*z.Scale)), rowUnits)
	cx := int(math.Floor(z.Center.X / colUnits))
	cy := int(math.Floor(z.Center.Y / rowUnits))
	left, top := cx-w/2, cy-h/2

	style, border, mark := cellZoneIdle, '·', '✕'
	if z.Highlighted {
		style, border, mark = cellZoneHot, '▪', '╳'
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if r == 0 || r == h-1 || c == 0 || c == w-1 {
				g.set(left+c, top+r, border, style)
			}
		}
	}
	g.set(cx, cy, mark, style)
}

func drawBubble(g *grid, s termSurface, pulse bool) {
	t := s.transform
	if t.Alpha <= 0.05 {
		return
	}
	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}

	baseW := spanCells(s.size.Width, colUnits)
	baseH := spanCells(s.size.Height, rowUnits)
	w := spanCells(int(math.Round(float64(s.size.Width)*scale)), colUnits)
	h := spanCells(int(math.Round(float64(s.size.Height)*scale)), rowUnits)

	// scale around the surface centre
	left := int(math.Floor(float64(s.pos.X)/colUnits)) - (w-baseW)/2
	top := int(math.Floor(float64(s.pos.Y)/rowUnits)) - (h-baseH)/2

	style := cellBubbleSolid
	switch {
	case t.Alpha < 0.4:
		style = cellBubbleFaint
	case t.Alpha < 0.75:
		style = cellBubbleSoft
	case scale > 1.05:
		style = cellBubbleBold
	}

	for r, line := range bubbleShape(w, h, t.Rotation) {
		for c, ch := range line {
			g.set(left+c, top+r, ch, style)
		}
	}
	if pulse {
		g.set(left+w, top, '≈', cellFeedback)
	}
}

// bubbleShape returns the glyphs of a w by h bubble. Rotation tilts the
// corners so the wobble is visible.
func bubbleShape(w, h int, rotation float64) [][]rune {
	if h == 1 {
		if w == 1 {
			return [][]rune{{'●'}}
		}
		return [][]rune{[]rune("(" + strings.Repeat("●", w-2) + ")")}
	}
	if w == 1 {
		out := make([][]rune, h)
		for i := range out {
			out[i] = []rune{'●'}
		}
		return out
	}

	tl, tr, bl, br := '╭', '╮', '╰', '╯'
	switch {
	case rotation > 4:
		tl, br = '┌', '┘'
	case rotation < -4:
		tr, bl = '┐', '└'
	}

	inner := w - 2
	out := make([][]rune, 0, h)
	out = append(out, []rune(string(tl)+strings.Repeat("─", inner)+string(tr)))
	for r := 1; r < h-1; r++ {
		mid := []rune("│" + strings.Repeat(" ", inner) + "│")
		if r == h/2 && inner > 0 {
			mid[1+inner/2] = '●'
		}
		out = append(out, mid)
	}
	out = append(out, []rune(string(bl)+strings.Repeat("─", inner)+string(br)))
	return out
}

func (m *model) dialogView() string {
	switch m.mode {
	case modeAddWord:
		body := OverlayTitleStyle.Render("Add word") + "\n\n" +
			inputBoxStyle.Render(m.input.View()) + "\n\n" +
			OverlayHelpStyle.Render("enter look up • esc cancel")
		return dialogStyle.Render(body)
	case modeFetching:
		return dialogStyle.Render(fmt.Sprintf("%s Looking up %q...", m.spinner.View(), strings.TrimSpace(m.input.Value())))
	case modeCard:
		if m.card == nil {
			return ""
		}
		width := min(max(m.width-10, 20), 80)
		help := "c copy translation • tab raw JSON • esc close"
		if m.card.err != nil {
			help = "esc close"
		}
		return dialogStyle.Render(m.card.render(width) + "\n\n" + OverlayHelpStyle.Render(help))
	case modeMenu:
		return m.menu.view()
	}
	return ""
}

func (m *model) statusLine() string {
	att := m.manager.Attachment()
	ctrl := m.manager.Controller()
	pos := ctrl.Position()

	state := errorStyle.Render("○ detached")
	if att.Attached() {
		state = okStyle.Render("● attached")
	}

	zone := "-"
	if z := ctrl.DeleteZone(); z.Visible {
		zone = "shown"
		if z.Armed {
			zone = "armed"
		}
	}
	perm := "on"
	if !m.perm.granted {
		perm = "off"
	}
	wake := "-"
	if m.wake.held {
		wake = "held"
	}

	parts := []string{
		state,
		ctrl.State().String(),
		fmt.Sprintf("(%d,%d)", pos.X, pos.Y),
		fmt.Sprintf("size %d", m.settings.Size),
		"zone " + zone,
		"perm " + perm,
		"wake " + wake,
	}
	if len(m.events) > 0 {
		parts = append(parts, "last "+string(m.events[len(m.events)-1].Type))
	}
	if m.status != "" {
		parts = append(parts, headerStyle.Render(m.status))
	}
	return statusBarStyle.Render(strings.Join(parts, "  "))
}

func (m *model) helpLine() string {
	return tipsStyle.Render("  s screen-off • o screen-on • u unlock • x stop • e enable • r restart • p permission • +/- size • q quit")
}
