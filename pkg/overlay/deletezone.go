package overlay

import "time"

// Delete zone geometry and timing.
const (
	DeleteZoneRadius       = 150
	DeleteZoneBottomOffset = 100

	deleteZoneEnterDuration    = 250 * time.Millisecond
	deleteZoneFeedbackDuration = 150 * time.Millisecond
	deleteZoneExitDuration     = 150 * time.Millisecond
)

// Delete zone appearance keyframes.
const (
	zoneIdleScale  = 0.7
	zoneIdleAlpha  = 0.5
	zoneHotScale   = 1.0
	zoneHotAlpha   = 1.0
	zoneExitScale  = 0.5
	zoneEnterScale = 0.0
)

// DefaultDeleteZoneSize is the drop target's measured size.
var DefaultDeleteZoneSize = Size{Width: 100, Height: 100}

// DeleteZoneTarget returns the centre of the drop target: horizontally
// centred, its bottom edge DeleteZoneBottomOffset above the screen bottom.
func DeleteZoneTarget(screen, zone Size) Point {
	return Point{
		X: float64(screen.Width) / 2,
		Y: float64(screen.Height-DeleteZoneBottomOffset) - float64(zone.Height)/2,
	}
}

// IsOverDeleteZone reports whether a bubble centred at c is within
// DeleteZoneRadius of the drop target.
func IsOverDeleteZone(c Point, screen, zone Size) bool {
	t := DeleteZoneTarget(screen, zone)
	dx := c.X - t.X
	dy := c.Y - t.Y
	return dx*dx+dy*dy < DeleteZoneRadius*DeleteZoneRadius
}

// DeleteZoneState is the logical state of the drop target. Armed becomes true
// once the entrance animation completes; only an armed zone highlights or
// accepts a drop.
type DeleteZoneState struct {
	Visible bool
	Armed   bool
}

// DeleteZoneAppearance is what a Host renders for the drop target.
type DeleteZoneAppearance struct {
	Visible     bool
	Highlighted bool
	Center      Point
	Size        Size
	Scale       float64
	Alpha       float64
}

// tween linearly interpolates scale and alpha over a fixed duration.
type tween struct {
	fromScale, toScale float64
	fromAlpha, toAlpha float64
	start              time.Time
	duration           time.Duration
}

func (t tween) at(now time.Time) (scale, alpha float64, done bool) {
	f := 1.0
	if t.duration > 0 {
		f = clampFloat(float64(now.Sub(t.start))/float64(t.duration), 0, 1)
	}
	scale = t.fromScale + (t.toScale-t.fromScale)*f
	alpha = t.fromAlpha + (t.toAlpha-t.fromAlpha)*f
	return scale, alpha, f >= 1
}

type zonePhase int

const (
	zoneHidden zonePhase = iota
	zoneEntering
	zoneShown
	zoneExiting
)

// deleteZone owns the drop target's state and animation. It is driven by the
// controller: show on drag start, setHot on every move, hide on release and
// advance on every tick.
type deleteZone struct {
	phase zonePhase
	state DeleteZoneState
	hot   bool
	anim  tween
	scale float64
	alpha float64
}

// show starts the entrance animation. It reports false if the zone is already
// visible, so re-entering a drag does not restart the entrance.
func (z *deleteZone) show(now time.Time) bool {
	if z.state.Visible {
		return false
	}
	from := z.scale
	fromAlpha := z.alpha
	if z.phase == zoneHidden {
		from, fromAlpha = zoneEnterScale, 0
	}
	z.phase = zoneEntering
	z.state = DeleteZoneState{Visible: true}
	z.hot = false
	z.anim = tween{
		fromScale: from, toScale: zoneIdleScale,
		fromAlpha: fromAlpha, toAlpha: zoneIdleAlpha,
		start: now, duration: deleteZoneEnterDuration,
	}
	z.scale, z.alpha = from, fromAlpha
	return true
}

// setHot switches the highlight. It is a no-op until the zone is armed and
// when the requested highlight is already active. Reports whether it changed.
func (z *deleteZone) setHot(now time.Time, hot bool) bool {
	if !z.state.Armed || z.hot == hot {
		return false
	}
	z.hot = hot
	toScale, toAlpha := zoneIdleScale, zoneIdleAlpha
	if hot {
		toScale, toAlpha = zoneHotScale, zoneHotAlpha
	}
	z.anim = tween{
		fromScale: z.scale, toScale: toScale,
		fromAlpha: z.alpha, toAlpha: toAlpha,
		start: now, duration: deleteZoneFeedbackDuration,
	}
	return true
}

// hide clears the logical state and starts the exit animation. Hiding a
// hidden zone is a no-op and reports false.
func (z *deleteZone) hide(now time.Time) bool {
	if !z.state.Visible {
		return false
	}
	z.state = DeleteZoneState{}
	z.hot = false
	z.phase = zoneExiting
	z.anim = tween{
		fromScale: z.scale, toScale: zoneExitScale,
		fromAlpha: z.alpha, toAlpha: 0,
		start: now, duration: deleteZoneExitDuration,
	}
	return true
}

// clear removes the zone immediately, skipping the exit animation.
func (z *deleteZone) clear() bool {
	was := z.phase != zoneHidden
	*z = deleteZone{}
	return was
}

// advance moves the animation to now. It reports whether the zone became
// armed on this call.
func (z *deleteZone) advance(now time.Time) (armed bool) {
	if z.phase == zoneHidden {
		return false
	}
	scale, alpha, done := z.anim.at(now)
	z.scale, z.alpha = scale, alpha
	if !done {
		return false
	}
	switch z.phase {
	case zoneEntering:
		z.phase = zoneShown
		z.state.Armed = true
		return true
	case zoneExiting:
		z.phase = zoneHidden
		z.scale, z.alpha = 0, 0
	}
	return false
}

// animating reports whether advance still has work to do.
func (z *deleteZone) animating(now time.Time) bool {
	if z.phase == zoneHidden {
		return false
	}
	_, _, done := z.anim.at(now)
	return !done || z.phase == zoneEntering || z.phase == zoneExiting
}

func (z *deleteZone) appearance(screen, size Size) DeleteZoneAppearance {
	if z.phase == zoneHidden {
		return DeleteZoneAppearance{Size: size, Center: DeleteZoneTarget(screen, size)}
	}
	return DeleteZoneAppearance{
		Visible:     true,
		Highlighted: z.hot,
		Center:      DeleteZoneTarget(screen, size),
		Size:        size,
		Scale:       z.scale,
		Alpha:       z.alpha,
	}
}
