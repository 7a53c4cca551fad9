// Package overlay implements the floating word bubble: a small always-on-top
// surface the user can tap, long-press, drag, fling to the nearest screen edge
// or drop onto a delete zone to dismiss.
//
// The package is host-agnostic. A Host supplies the windowing primitives
// (create, move, measure and destroy a surface) and a PositionStore persists
// the bubble position, size and enabled flag. Everything else lives here:
//
//	Manager     lifecycle signals (AppStarted, ScreenOff, ScreenOn,
//	            UserPresent, StopRequested) and the single surface attachment
//	Controller  pointer gesture state machine (Idle, Pressed, Dragging, Settling)
//	deleteZone  bottom-centre drop target with its entrance/exit animation
//	SnapAnimation  the two-phase wobble then bounce-to-edge animation
//
// All methods are meant to be called from a single loop. Pointer events carry
// their own timestamps and Manager.Tick drives every animation, so the whole
// state machine is deterministic under a fake clock.
//
// Typical embedding:
//
//	store := overlay.NewMemoryStore()
//	mgr := overlay.NewManager(host, store, overlay.Options{
//		OnTap: func() { openAddWord() },
//	})
//	mgr.Handle(overlay.AppStarted)
//	// host event loop:
//	mgr.HandlePointer(overlay.PointerEvent{Action: overlay.PointerDown, ...})
//	mgr.Tick(time.Now())
package overlay
