package headless

import (
	"github.com/entrhq/vocab/pkg/overlay"
)

// recordedSurface is the last known state of a surface the manager created.
type recordedSurface struct {
	pos       overlay.Position
	size      overlay.Size
	transform overlay.Transform
}

// recordingHost is an overlay.Host with no display. It keeps surfaces in a
// map and counts every call so scenarios can assert on them. Surfaces are
// measured as soon as they exist.
type recordingHost struct {
	screen   overlay.Size
	surfaces map[overlay.SurfaceHandle]*recordedSurface
	next     overlay.SurfaceHandle
	zone     overlay.DeleteZoneAppearance

	creates  int
	destroys int
	moves    int
}

func newRecordingHost(screen overlay.Size) *recordingHost {
	return &recordingHost{
		screen:   screen,
		surfaces: make(map[overlay.SurfaceHandle]*recordedSurface),
	}
}

func (h *recordingHost) CreateSurface(pos overlay.Position, size overlay.Size) (overlay.SurfaceHandle, error) {
	if len(h.surfaces) > 0 {
		var existing overlay.SurfaceHandle
		for handle := range h.surfaces {
			existing = handle
			break
		}
		return existing, overlay.ErrAlreadyAttached
	}
	h.creates++
	h.next++
	h.surfaces[h.next] = &recordedSurface{pos: pos, size: size, transform: overlay.Identity(1)}
	return h.next, nil
}

func (h *recordingHost) UpdateSurfacePosition(handle overlay.SurfaceHandle, pos overlay.Position) error {
	s, ok := h.surfaces[handle]
	if !ok {
		return overlay.ErrSurfaceGone
	}
	h.moves++
	s.pos = pos
	return nil
}

func (h *recordingHost) DestroySurface(handle overlay.SurfaceHandle) error {
	if _, ok := h.surfaces[handle]; !ok {
		return overlay.ErrSurfaceGone
	}
	h.destroys++
	delete(h.surfaces, handle)
	return nil
}

func (h *recordingHost) MeasureSurface(handle overlay.SurfaceHandle) (overlay.Size, error) {
	s, ok := h.surfaces[handle]
	if !ok {
		return overlay.Size{}, overlay.ErrSurfaceGone
	}
	return s.size, nil
}

func (h *recordingHost) ScreenSize() overlay.Size {
	return h.screen
}

func (h *recordingHost) ApplyTransform(handle overlay.SurfaceHandle, t overlay.Transform) error {
	s, ok := h.surfaces[handle]
	if !ok {
		return overlay.ErrSurfaceGone
	}
	s.transform = t
	return nil
}

func (h *recordingHost) RenderDeleteZone(z overlay.DeleteZoneAppearance) {
	h.zone = z
}

// dropAll removes every surface without telling the manager, the way a
// system kill or a crashed window server would.
func (h *recordingHost) dropAll() {
	for handle := range h.surfaces {
		delete(h.surfaces, handle)
	}
	h.zone = overlay.DeleteZoneAppearance{}
}

// live returns the single surface on screen, if any.
func (h *recordingHost) live() (*recordedSurface, bool) {
	var found *recordedSurface
	for _, s := range h.surfaces {
		found = s
		break
	}
	return found, found != nil
}

// switchable is a Permission a scenario can revoke and grant.
type switchable struct {
	granted bool
}

func (p *switchable) CanDrawOverlays() bool { return p.granted }

// countingWakeLock tracks whether the lock is held.
type countingWakeLock struct {
	held     bool
	acquires int
}

func (w *countingWakeLock) Acquire() {
	w.held = true
	w.acquires++
}

func (w *countingWakeLock) Release() {
	w.held = false
}

// countingHaptics counts feedback pulses.
type countingHaptics struct {
	pulses int
}

func (h *countingHaptics) Perform() {
	h.pulses++
}
