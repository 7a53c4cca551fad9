package tui

import (
	"sort"
	"sync"

	"github.com/entrhq/vocab/pkg/overlay"
)

// One terminal cell covers colUnits by rowUnits overlay units, so a square
// bubble stays roughly round on a typical 1:2 cell.
const (
	colUnits = 10
	rowUnits = 20
)

// termSurface is a bubble drawn into the cell grid.
type termSurface struct {
	pos       overlay.Position
	size      overlay.Size
	transform overlay.Transform
	rendered  bool
}

// termHost implements overlay.Host over the terminal cell grid. Like a
// window manager it holds at most one bubble surface.
type termHost struct {
	mu       sync.Mutex
	screen   overlay.Size
	surfaces map[overlay.SurfaceHandle]*termSurface
	next     overlay.SurfaceHandle
	zone     overlay.DeleteZoneAppearance
}

func newTermHost() *termHost {
	return &termHost{surfaces: make(map[overlay.SurfaceHandle]*termSurface)}
}

// resize sets the drawable area from a cell count.
func (h *termHost) resize(cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.screen = overlay.Size{Width: max(cols, 0) * colUnits, Height: max(rows, 0) * rowUnits}
}

func (h *termHost) CreateSurface(pos overlay.Position, size overlay.Size) (overlay.SurfaceHandle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.surfaces) > 0 {
		var existing overlay.SurfaceHandle
		for handle := range h.surfaces {
			existing = handle
			break
		}
		return existing, overlay.ErrAlreadyAttached
	}
	h.next++
	h.surfaces[h.next] = &termSurface{pos: pos, size: size, transform: overlay.Identity(1)}
	return h.next, nil
}

func (h *termHost) UpdateSurfacePosition(handle overlay.SurfaceHandle, pos overlay.Position) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.surfaces[handle]
	if !ok {
		return overlay.ErrSurfaceGone
	}
	s.pos = pos
	return nil
}

func (h *termHost) DestroySurface(handle overlay.SurfaceHandle) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.surfaces[handle]; !ok {
		return overlay.ErrSurfaceGone
	}
	delete(h.surfaces, handle)
	return nil
}

// MeasureSurface reports ErrNotMeasured until the surface has been drawn once.
func (h *termHost) MeasureSurface(handle overlay.SurfaceHandle) (overlay.Size, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.surfaces[handle]
	if !ok {
		return overlay.Size{}, overlay.ErrSurfaceGone
	}
	if !s.rendered {
		return overlay.Size{}, overlay.ErrNotMeasured
	}
	// what the grid actually shows, rounded up to whole cells
	return overlay.Size{
		Width:  spanCells(s.size.Width, colUnits) * colUnits,
		Height: spanCells(s.size.Height, rowUnits) * rowUnits,
	}, nil
}

func (h *termHost) ScreenSize() overlay.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screen
}

func (h *termHost) ApplyTransform(handle overlay.SurfaceHandle, t overlay.Transform) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.surfaces[handle]
	if !ok {
		return overlay.ErrSurfaceGone
	}
	s.transform = t
	return nil
}

func (h *termHost) RenderDeleteZone(z overlay.DeleteZoneAppearance) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.zone = z
}

// dropAll removes every surface without telling anyone, like the windowing
// system does when the owning process dies.
func (h *termHost) dropAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces = make(map[overlay.SurfaceHandle]*termSurface)
	h.zone = overlay.DeleteZoneAppearance{}
}

// snapshot copies the drawable state and marks every surface as rendered.
func (h *termHost) snapshot() ([]termSurface, overlay.DeleteZoneAppearance, overlay.Size) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handles := make([]overlay.SurfaceHandle, 0, len(h.surfaces))
	for handle := range h.surfaces {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	out := make([]termSurface, 0, len(handles))
	for _, handle := range handles {
		s := h.surfaces[handle]
		s.rendered = true
		out = append(out, *s)
	}
	return out, h.zone, h.screen
}

// hit reports whether a point in overlay units lies on a surface.
func (h *termHost) hit(x, y float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, s := range h.surfaces {
		w := float64(spanCells(s.size.Width, colUnits) * colUnits)
		ht := float64(spanCells(s.size.Height, rowUnits) * rowUnits)
		if x >= float64(s.pos.X) && x < float64(s.pos.X)+w &&
			y >= float64(s.pos.Y) && y < float64(s.pos.Y)+ht {
			return true
		}
	}
	return false
}

func (h *termHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.surfaces)
}

// spanCells is the number of cells needed to show n units, at least one.
func spanCells(n, unit int) int {
	if n <= 0 {
		return 1
	}
	return max(1, (n+unit-1)/unit)
}

// cellCenter converts a cell coordinate into overlay units at the cell's centre.
func cellCenter(col, row int) (x, y float64) {
	return float64(col*colUnits + colUnits/2), float64(row*rowUnits + rowUnits/2)
}
