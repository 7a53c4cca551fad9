package overlay

import (
	"errors"
	"math"
	"time"

	"github.com/entrhq/vocab/pkg/types"
	"github.com/google/uuid"
)

// Gesture thresholds.
const (
	// DragTolerance is how far, in either axis, the pointer must travel
	// before a press becomes a drag.
	DragTolerance = 20

	// TapTimeout is the longest press that still counts as a tap.
	TapTimeout = 200 * time.Millisecond

	// LongPressTimeout is how long a host should see a still press before
	// calling LongPress.
	LongPressTimeout = 500 * time.Millisecond
)

// PointerAction is the kind of a PointerEvent.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (a PointerAction) String() string {
	switch a {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a single pointer sample in screen units.
type PointerEvent struct {
	Action PointerAction
	X      float64
	Y      float64
	At     time.Time
}

// GestureState is the controller's position in the gesture state machine.
type GestureState int

const (
	Idle GestureState = iota
	Pressed
	Dragging
	Settling
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Classification is how a finished press is interpreted.
type Classification int

const (
	Tap Classification = iota + 1
	DragRelease
)

func (c Classification) String() string {
	switch c {
	case Tap:
		return "tap"
	case DragRelease:
		return "drag_release"
	default:
		return "unknown"
	}
}

// Classify returns Tap when the press was shorter than TapTimeout and moved
// less than DragTolerance on both axes, DragRelease otherwise.
func Classify(elapsed time.Duration, dx, dy float64) Classification {
	if elapsed < TapTimeout && math.Abs(dx) < DragTolerance && math.Abs(dy) < DragTolerance {
		return Tap
	}
	return DragRelease
}

// GestureSession is the per-press record, created on pointer down and
// dropped on release or cancel.
type GestureSession struct {
	ID            string
	StartPosition Position
	StartPointer  Point
	StartTime     time.Time
	// SurfaceSize is measured once at press time and reused for every
	// delete-zone test and the snap target.
	SurfaceSize Size
}

// Controller is the gesture state machine for one attached bubble.
// It is created and owned by a Manager.
type Controller struct {
	surface surface
	store   PositionStore
	log     Logger

	snapCfg  SnapConfig
	zoneSize Size
	diameter int
	alpha    float64

	haptics   Haptics
	vibration bool

	onTap          func()
	onQuickActions func()
	onDismiss      func()
	onEvent        func(types.OverlayEvent)

	state        GestureState
	session      *GestureSession
	position     Position
	zone         deleteZone
	zoneRendered bool
	snap         *SnapAnimation
}

// State returns the current gesture state.
func (c *Controller) State() GestureState {
	return c.state
}

// Position returns the bubble position as last rendered.
func (c *Controller) Position() Position {
	return c.position
}

// DeleteZone returns the logical delete-zone state.
func (c *Controller) DeleteZone() DeleteZoneState {
	return c.zone.state
}

// Session returns a copy of the active gesture session, if any.
func (c *Controller) Session() (GestureSession, bool) {
	if c.session == nil {
		return GestureSession{}, false
	}
	return *c.session, true
}

// Snap returns the in-flight snap animation, or nil.
func (c *Controller) Snap() *SnapAnimation {
	return c.snap
}

// HandlePointer feeds one pointer sample through the state machine and
// reports whether it was consumed.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	switch ev.Action {
	case PointerDown:
		return c.pointerDown(ev)
	case PointerMove:
		return c.pointerMove(ev)
	case PointerUp:
		return c.pointerUp(ev)
	case PointerCancel:
		return c.pointerCancel(ev)
	default:
		c.log.Warnf("ignoring pointer event with unknown action %d", ev.Action)
		return false
	}
}

// LongPress opens quick actions when the bubble is held without dragging.
// The press stays active, so a drag may still follow.
func (c *Controller) LongPress(now time.Time) bool {
	if c.state != Pressed {
		return false
	}
	c.feedback()
	c.emit(types.EventTypeLongPress, now)
	if c.onQuickActions != nil {
		c.onQuickActions()
	}
	return true
}

// Tick advances the delete-zone and snap animations to now.
func (c *Controller) Tick(now time.Time) {
	c.advanceZone(now)
	if c.state == Dragging && c.session != nil {
		c.updateHighlight(now)
	}
	c.renderZone()

	if c.state != Settling || c.snap == nil {
		return
	}
	fr, done := c.snap.Advance(now)
	if fr.Positional {
		if err := c.moveTo(fr.Position, now); err != nil {
			return
		}
	}
	c.applyTransform(fr.Transform)
	if done {
		c.snap = nil
		c.state = Idle
		c.applyTransform(Identity(c.alpha))
		c.emit(types.EventTypeSnapEnd, now)
	}
}

// Abort puts the controller in a safe terminal state: an active press ends
// at its last position without a snap, an in-flight snap stops where it is,
// and the delete zone is removed without its exit animation.
func (c *Controller) Abort(now time.Time) {
	switch c.state {
	case Pressed, Dragging:
		c.store.Save(c.position)
		c.emit(types.EventTypeGestureAborted, now)
	case Settling:
		c.cancelSnap(now)
	}
	c.session = nil
	c.state = Idle
	c.zone.clear()
	c.renderZone()
}

// reset binds the controller to a freshly created surface.
func (c *Controller) reset(pos Position, diameter int) {
	c.position = pos
	c.diameter = diameter
	c.state = Idle
	c.session = nil
	c.snap = nil
	c.zone = deleteZone{}
	c.zoneRendered = false
}

func (c *Controller) pointerDown(ev PointerEvent) bool {
	switch c.state {
	case Settling:
		c.cancelSnap(ev.At)
	case Pressed, Dragging:
		c.log.Warnf("pointer down while %s; dropping previous gesture", c.state)
		c.Abort(ev.At)
	}

	c.session = &GestureSession{
		ID:            uuid.NewString(),
		StartPosition: c.position,
		StartPointer:  Point{X: ev.X, Y: ev.Y},
		StartTime:     ev.At,
		SurfaceSize:   c.measure(),
	}
	c.state = Pressed
	c.emit(types.EventTypePressed, ev.At)
	return true
}

func (c *Controller) pointerMove(ev PointerEvent) bool {
	s := c.session
	if s == nil {
		return false
	}
	dx := ev.X - s.StartPointer.X
	dy := ev.Y - s.StartPointer.Y

	c.advanceZone(ev.At)
	if c.state == Pressed && (math.Abs(dx) > DragTolerance || math.Abs(dy) > DragTolerance) {
		c.state = Dragging
		c.emit(types.EventTypeDragStart, ev.At)
	}
	if c.state != Dragging {
		return true
	}
	if c.zone.show(ev.At) {
		c.emit(types.EventTypeDeleteZoneShown, ev.At)
	}

	if err := c.moveTo(s.StartPosition.Offset(dx, dy), ev.At); err != nil {
		return true
	}
	c.updateHighlight(ev.At)
	c.renderZone()
	return true
}

func (c *Controller) pointerUp(ev PointerEvent) bool {
	s := c.session
	if s == nil {
		return false
	}
	dx := ev.X - s.StartPointer.X
	dy := ev.Y - s.StartPointer.Y
	class := Classify(ev.At.Sub(s.StartTime), dx, dy)

	c.advanceZone(ev.At)
	overArmed := c.zone.state.Armed && c.overZone(s)
	c.hideZone(ev.At)

	switch {
	case class == Tap:
		c.finish()
		if overArmed {
			c.log.Debugf("tap released over armed delete zone; ignoring")
			c.emitSession(types.EventTypeGestureAborted, ev.At, s.ID)
			return true
		}
		c.feedback()
		c.emitSession(types.EventTypeTap, ev.At, s.ID)
		if c.onTap != nil {
			c.onTap()
		}
	case overArmed:
		c.finish()
		c.store.Save(c.position)
		c.feedback()
		c.emitSession(types.EventTypeDismissed, ev.At, s.ID)
		if c.onDismiss != nil {
			c.onDismiss()
		}
	default:
		c.emit(types.EventTypeDragRelease, ev.At)
		c.session = nil
		c.startSnap(ev.At, s.SurfaceSize)
	}
	return true
}

func (c *Controller) pointerCancel(ev PointerEvent) bool {
	s := c.session
	if s == nil {
		return false
	}
	wasDragging := c.state == Dragging
	c.advanceZone(ev.At)
	c.hideZone(ev.At)
	c.emit(types.EventTypeGestureAborted, ev.At)
	c.store.Save(c.position)
	c.session = nil
	if wasDragging {
		c.startSnap(ev.At, s.SurfaceSize)
		return true
	}
	c.state = Idle
	return true
}

func (c *Controller) finish() {
	c.session = nil
	c.state = Idle
}

func (c *Controller) startSnap(now time.Time, size Size) {
	screen := c.surface.screen()
	if screen.Empty() {
		c.state = Idle
		return
	}
	target := SnapTarget(c.position, screen, size, c.snapCfg.Margin)
	c.snap = NewSnapAnimation(c.position, target, c.alpha, now, c.snapCfg)
	c.state = Settling
	c.emitEvent(types.NewOverlayEvent(types.EventTypeSnapStart, now, c.position.X, c.position.Y).
		WithMeta("target_x", target.X).
		WithMeta("target_y", target.Y))
}

func (c *Controller) cancelSnap(now time.Time) {
	if c.snap == nil {
		c.state = Idle
		return
	}
	c.snap = nil
	c.state = Idle
	c.applyTransform(Identity(c.alpha))
	c.emit(types.EventTypeSnapCancelled, now)
}

// moveTo records, persists and renders a new position. A lost surface resets
// the controller, since there is nothing left to gesture on.
func (c *Controller) moveTo(pos Position, now time.Time) error {
	c.position = pos
	c.store.Save(pos)
	err := c.surface.move(pos)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSurfaceGone) || errors.Is(err, ErrNotAttached) {
		c.log.Warnf("surface lost while moving bubble: %v", err)
		c.snap = nil
		c.session = nil
		c.state = Idle
		c.zone.clear()
		c.renderZone()
		return err
	}
	c.log.Errorf("failed to move bubble to (%d, %d): %v", pos.X, pos.Y, err)
	c.emitEvent(types.NewErrorEvent(now, err))
	return nil
}

func (c *Controller) applyTransform(t Transform) {
	if err := c.surface.transform(t); err != nil {
		c.log.Debugf("apply transform: %v", err)
	}
}

// measure returns the live surface size, or the configured diameter while the
// host has not laid the surface out yet.
func (c *Controller) measure() Size {
	size, err := c.surface.measure()
	if err != nil || size.Empty() {
		if err != nil && !errors.Is(err, ErrNotMeasured) {
			c.log.Debugf("measure surface: %v", err)
		}
		return Square(c.diameter)
	}
	return size
}

func (c *Controller) overZone(s *GestureSession) bool {
	return IsOverDeleteZone(c.position.Center(s.SurfaceSize), c.surface.screen(), c.zoneSize)
}

func (c *Controller) updateHighlight(now time.Time) {
	over := c.overZone(c.session)
	if !c.zone.setHot(now, over) {
		return
	}
	if over {
		c.emit(types.EventTypeDeleteZoneHot, now)
	} else {
		c.emit(types.EventTypeDeleteZoneCold, now)
	}
}

func (c *Controller) advanceZone(now time.Time) {
	if c.zone.advance(now) {
		c.emit(types.EventTypeDeleteZoneArmed, now)
	}
}

func (c *Controller) hideZone(now time.Time) {
	if c.zone.hide(now) {
		c.emit(types.EventTypeDeleteZoneHidden, now)
		c.renderZone()
	}
}

func (c *Controller) renderZone() {
	visible := c.zone.phase != zoneHidden
	if !visible && !c.zoneRendered {
		return
	}
	c.surface.renderDeleteZone(c.zone.appearance(c.surface.screen(), c.zoneSize))
	c.zoneRendered = visible
}

func (c *Controller) feedback() {
	if c.vibration && c.haptics != nil {
		c.haptics.Perform()
	}
}

func (c *Controller) emit(t types.OverlayEventType, now time.Time) {
	id := ""
	if c.session != nil {
		id = c.session.ID
	}
	c.emitSession(t, now, id)
}

func (c *Controller) emitSession(t types.OverlayEventType, now time.Time, id string) {
	c.emitEvent(types.NewOverlayEvent(t, now, c.position.X, c.position.Y).WithSession(id))
}

func (c *Controller) emitEvent(e types.OverlayEvent) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}
