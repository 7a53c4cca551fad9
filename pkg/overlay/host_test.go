package overlay

import (
	"testing"
	"time"

	"github.com/entrhq/vocab/pkg/types"
)

type fakeSurface struct {
	pos       Position
	size      Size
	transform Transform
}

type fakeHost struct {
	screen     Size
	next       SurfaceHandle
	surfaces   map[SurfaceHandle]*fakeSurface
	creates    int
	destroys   int
	moves      []Position
	transforms []Transform
	zones      []DeleteZoneAppearance
	unmeasured bool

	createErr    error
	createHandle SurfaceHandle
	destroyErr   error
}

func newFakeHost(screen Size) *fakeHost {
	return &fakeHost{screen: screen, surfaces: make(map[SurfaceHandle]*fakeSurface)}
}

func (h *fakeHost) CreateSurface(pos Position, size Size) (SurfaceHandle, error) {
	if h.createErr != nil {
		return h.createHandle, h.createErr
	}
	h.next++
	h.creates++
	h.surfaces[h.next] = &fakeSurface{pos: pos, size: size}
	return h.next, nil
}

func (h *fakeHost) UpdateSurfacePosition(id SurfaceHandle, pos Position) error {
	s, ok := h.surfaces[id]
	if !ok {
		return ErrSurfaceGone
	}
	s.pos = pos
	h.moves = append(h.moves, pos)
	return nil
}

func (h *fakeHost) DestroySurface(id SurfaceHandle) error {
	h.destroys++
	if h.destroyErr != nil {
		return h.destroyErr
	}
	if _, ok := h.surfaces[id]; !ok {
		return ErrSurfaceGone
	}
	delete(h.surfaces, id)
	return nil
}

func (h *fakeHost) MeasureSurface(id SurfaceHandle) (Size, error) {
	s, ok := h.surfaces[id]
	if !ok {
		return Size{}, ErrSurfaceGone
	}
	if h.unmeasured {
		return Size{}, ErrNotMeasured
	}
	return s.size, nil
}

func (h *fakeHost) ScreenSize() Size {
	return h.screen
}

func (h *fakeHost) ApplyTransform(id SurfaceHandle, t Transform) error {
	s, ok := h.surfaces[id]
	if !ok {
		return ErrSurfaceGone
	}
	s.transform = t
	h.transforms = append(h.transforms, t)
	return nil
}

func (h *fakeHost) RenderDeleteZone(z DeleteZoneAppearance) {
	h.zones = append(h.zones, z)
}

// live returns the only surface on screen, or nil.
func (h *fakeHost) live() *fakeSurface {
	for _, s := range h.surfaces {
		return s
	}
	return nil
}

// dropAll removes every surface without telling the manager.
func (h *fakeHost) dropAll() {
	h.surfaces = make(map[SurfaceHandle]*fakeSurface)
}

func (h *fakeHost) lastZone() (DeleteZoneAppearance, bool) {
	if len(h.zones) == 0 {
		return DeleteZoneAppearance{}, false
	}
	return h.zones[len(h.zones)-1], true
}

type fakeWakeLock struct {
	held     bool
	acquires int
	releases int
}

func (l *fakeWakeLock) Acquire() {
	l.held = true
	l.acquires++
}

func (l *fakeWakeLock) Release() {
	l.held = false
	l.releases++
}

type fakeHaptics struct {
	pulses int
}

func (h *fakeHaptics) Perform() {
	h.pulses++
}

type fakePermission struct {
	granted bool
}

func (p *fakePermission) CanDrawOverlays() bool {
	return p.granted
}

// harness wires a Manager to fakes with a millisecond clock starting at t0.
type harness struct {
	t       *testing.T
	host    *fakeHost
	store   *MemoryStore
	mgr     *Manager
	lock    *fakeWakeLock
	haptics *fakeHaptics
	perm    *fakePermission
	events  []types.OverlayEvent
	taps    int
	quick   int
	t0      time.Time
	now     time.Time
}

func newHarness(t *testing.T, screen Size, configure ...func(*Options)) *harness {
	return newHarnessWithStore(t, screen, NewMemoryStore(), configure...)
}

func newHarnessWithStore(t *testing.T, screen Size, store *MemoryStore, configure ...func(*Options)) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		host:    newFakeHost(screen),
		store:   store,
		lock:    &fakeWakeLock{},
		haptics: &fakeHaptics{},
		perm:    &fakePermission{granted: true},
		t0:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	h.now = h.t0
	opts := Options{
		Permission:     h.perm,
		WakeLock:       h.lock,
		Haptics:        h.haptics,
		Vibration:      true,
		OnTap:          func() { h.taps++ },
		OnQuickActions: func() { h.quick++ },
		OnEvent:        func(e types.OverlayEvent) { h.events = append(h.events, e) },
		Clock:          func() time.Time { return h.now },
	}
	for _, fn := range configure {
		fn(&opts)
	}
	h.mgr = NewManager(h.host, h.store, opts)
	return h
}

func (h *harness) at(ms int) time.Time {
	h.now = h.t0.Add(time.Duration(ms) * time.Millisecond)
	return h.now
}

func (h *harness) pointer(action PointerAction, ms int, x, y float64) bool {
	return h.mgr.HandlePointer(PointerEvent{Action: action, X: x, Y: y, At: h.at(ms)})
}

func (h *harness) down(ms int, x, y float64) bool { return h.pointer(PointerDown, ms, x, y) }
func (h *harness) move(ms int, x, y float64) bool { return h.pointer(PointerMove, ms, x, y) }
func (h *harness) up(ms int, x, y float64) bool { return h.pointer(PointerUp, ms, x, y) }
func (h *harness) cancel(ms int, x, y float64) bool { return h.pointer(PointerCancel, ms, x, y) }

func (h *harness) tick(ms int) {
	h.mgr.Tick(h.at(ms))
}

// tickRange ticks every step milliseconds from `from` through `to` inclusive.
func (h *harness) tickRange(from, to, step int) {
	for ms := from; ms <= to; ms += step {
		h.tick(ms)
	}
}

func (h *harness) count(t types.OverlayEventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func (h *harness) controller() *Controller {
	return h.mgr.Controller()
}
