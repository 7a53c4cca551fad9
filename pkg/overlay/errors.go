package overlay

import "errors"

var (
	// ErrAlreadyAttached is returned by a Host when asked to create a surface
	// that is already on screen. The manager treats it as a benign race.
	ErrAlreadyAttached = errors.New("overlay: surface already attached")

	// ErrNotAttached is returned when an operation needs a live surface.
	ErrNotAttached = errors.New("overlay: surface not attached")

	// ErrSurfaceGone is returned by a Host when a handle refers to a surface
	// the host already removed behind the manager's back.
	ErrSurfaceGone = errors.New("overlay: surface no longer exists")

	// ErrPermissionDenied is returned by attach when the draw-over-apps
	// permission is missing.
	ErrPermissionDenied = errors.New("overlay: permission to draw overlays denied")

	// ErrNotMeasured is returned by Host.MeasureSurface before the first layout.
	ErrNotMeasured = errors.New("overlay: surface not measured yet")

	// ErrFeatureDisabled is returned by attach when the bubble is switched off.
	ErrFeatureDisabled = errors.New("overlay: bubble disabled")
)
