package tui

import "time"

// hapticPulse is how long the on-screen haptic marker stays lit.
const hapticPulse = 150 * time.Millisecond

// permissionToggle stands in for the draw-over-other-apps permission.
type permissionToggle struct {
	granted bool
}

func (p *permissionToggle) CanDrawOverlays() bool { return p.granted }

func (p *permissionToggle) toggle() bool {
	p.granted = !p.granted
	return p.granted
}

// wakeIndicator records whether the bubble asked to keep the screen on.
type wakeIndicator struct {
	held     bool
	acquired int
}

func (w *wakeIndicator) Acquire() {
	w.held = true
	w.acquired++
}

func (w *wakeIndicator) Release() { w.held = false }

// hapticFlash shows a short marker next to the bubble instead of vibrating.
type hapticFlash struct {
	now   func() time.Time
	until time.Time
	count int
}

func (h *hapticFlash) Perform() {
	h.until = h.now().Add(hapticPulse)
	h.count++
}

func (h *hapticFlash) active() bool {
	return h.now().Before(h.until)
}
