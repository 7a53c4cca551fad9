package overlay

// SurfaceHandle identifies a surface created by a Host. Zero is never valid.
type SurfaceHandle int64

// Host is the windowing system the bubble lives on.
//
// Implementations return ErrSurfaceGone when a handle no longer refers to a
// live surface, ErrAlreadyAttached when CreateSurface races with an existing
// surface (returning that surface's handle), and ErrNotMeasured from
// MeasureSurface before the first layout pass.
type Host interface {
	CreateSurface(pos Position, size Size) (SurfaceHandle, error)
	UpdateSurfacePosition(h SurfaceHandle, pos Position) error
	DestroySurface(h SurfaceHandle) error
	MeasureSurface(h SurfaceHandle) (Size, error)
	ScreenSize() Size

	// ApplyTransform sets rotation, scale and alpha on a live surface.
	ApplyTransform(h SurfaceHandle, t Transform) error

	// RenderDeleteZone draws (or removes, when !Visible) the delete zone.
	RenderDeleteZone(z DeleteZoneAppearance)
}

// PositionStore persists the bubble position, diameter and enabled flag.
//
// Save and SaveSize must not block the caller on I/O; they are invoked for
// every drag sample and every settle frame.
type PositionStore interface {
	Load() (Position, error)
	Save(pos Position)
	LoadSize() (int, error)
	SaveSize(size int)
	IsFeatureEnabled() bool
	SetFeatureEnabled(enabled bool)
}

// Permission reports whether the host allows drawing over other apps.
type Permission interface {
	CanDrawOverlays() bool
}

// WakeLock keeps the host awake while the bubble is on screen.
type WakeLock interface {
	Acquire()
	Release()
}

// Haptics performs a short feedback pulse.
type Haptics interface {
	Perform()
}

// Logger is the logging surface the package needs. *logging.Logger satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// AllowAll is a Permission that is always granted.
type AllowAll struct{}

// CanDrawOverlays always returns true.
func (AllowAll) CanDrawOverlays() bool { return true }

// surface is the slice of the attachment the gesture controller may touch.
// It can move, measure and transform the live bubble but never create or
// destroy it.
type surface interface {
	move(pos Position) error
	measure() (Size, error)
	transform(t Transform) error
	screen() Size
	renderDeleteZone(z DeleteZoneAppearance)
}
