package types

import "time"

// OverlayEventType defines the type of event emitted by the bubble overlay.
type OverlayEventType string

const (
	EventTypeAttached         OverlayEventType = "attached"           // EventTypeAttached indicates the bubble surface was created and is on screen.
	EventTypeDetached         OverlayEventType = "detached"           // EventTypeDetached indicates the bubble surface was destroyed.
	EventTypeAttachRefused    OverlayEventType = "attach_refused"     // EventTypeAttachRefused indicates an attach was skipped (disabled, no permission, host error).
	EventTypeSurfaceLost      OverlayEventType = "surface_lost"       // EventTypeSurfaceLost indicates the host removed the surface behind the manager's back.
	EventTypeStopped          OverlayEventType = "stopped"            // EventTypeStopped indicates the user disabled the bubble.
	EventTypeReconfigured     OverlayEventType = "reconfigured"       // EventTypeReconfigured indicates size, alpha or haptics settings changed.
	EventTypePressed          OverlayEventType = "pressed"            // EventTypePressed indicates a pointer went down on the bubble.
	EventTypeDragStart        OverlayEventType = "drag_start"         // EventTypeDragStart indicates the pointer moved past the drag tolerance.
	EventTypeDragRelease      OverlayEventType = "drag_release"       // EventTypeDragRelease indicates a drag ended away from an armed delete zone.
	EventTypeTap              OverlayEventType = "tap"                // EventTypeTap indicates a quick press and release.
	EventTypeLongPress        OverlayEventType = "long_press"         // EventTypeLongPress indicates the bubble was held still long enough to open quick actions.
	EventTypeGestureAborted   OverlayEventType = "gesture_aborted"    // EventTypeGestureAborted indicates a gesture was cut short by a cancel or lifecycle signal.
	EventTypeDeleteZoneShown  OverlayEventType = "delete_zone_shown"  // EventTypeDeleteZoneShown indicates the delete zone started its entrance.
	EventTypeDeleteZoneArmed  OverlayEventType = "delete_zone_armed"  // EventTypeDeleteZoneArmed indicates the delete zone finished its entrance and accepts drops.
	EventTypeDeleteZoneHot    OverlayEventType = "delete_zone_hot"    // EventTypeDeleteZoneHot indicates the bubble entered the armed delete zone.
	EventTypeDeleteZoneCold   OverlayEventType = "delete_zone_cold"   // EventTypeDeleteZoneCold indicates the bubble left the armed delete zone.
	EventTypeDeleteZoneHidden OverlayEventType = "delete_zone_hidden" // EventTypeDeleteZoneHidden indicates the delete zone started its exit.
	EventTypeDismissed        OverlayEventType = "dismissed"          // EventTypeDismissed indicates the bubble was dropped on the armed delete zone.
	EventTypeSnapStart        OverlayEventType = "snap_start"         // EventTypeSnapStart indicates the edge-snap animation started.
	EventTypeSnapEnd          OverlayEventType = "snap_end"           // EventTypeSnapEnd indicates the edge-snap animation reached its target.
	EventTypeSnapCancelled    OverlayEventType = "snap_cancelled"     // EventTypeSnapCancelled indicates the edge-snap animation stopped early.
	EventTypeError            OverlayEventType = "error"              // EventTypeError indicates a host or store call failed.
)

// OverlayEvent represents an event emitted by the overlay.
type OverlayEvent struct {
	// Time is when the event happened. Pointer events use the pointer
	// timestamp; lifecycle events use the manager clock.
	Time time.Time

	// Metadata holds optional additional information about the event.
	Metadata map[string]interface{}

	// Error contains error information for error and refusal events.
	Error error

	// Type indicates the kind of event.
	Type OverlayEventType

	// SessionID correlates events of one gesture. Empty for lifecycle events.
	SessionID string

	// X and Y are the bubble position when the event was emitted.
	X int
	Y int
}

// NewOverlayEvent creates an event of the given type at the given position.
func NewOverlayEvent(t OverlayEventType, at time.Time, x, y int) OverlayEvent {
	return OverlayEvent{
		Type:     t,
		Time:     at,
		X:        x,
		Y:        y,
		Metadata: make(map[string]interface{}),
	}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(at time.Time, err error) OverlayEvent {
	return OverlayEvent{
		Type:     EventTypeError,
		Time:     at,
		Error:    err,
		Metadata: make(map[string]interface{}),
	}
}

// WithSession returns a copy of e tagged with a gesture session id.
func (e OverlayEvent) WithSession(id string) OverlayEvent {
	e.SessionID = id
	return e
}

// WithMeta returns a copy of e with key set in its metadata.
func (e OverlayEvent) WithMeta(key string, value interface{}) OverlayEvent {
	meta := make(map[string]interface{}, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	e.Metadata = meta
	return e
}

// IsGestureEvent reports whether the event belongs to a pointer gesture.
func (e OverlayEvent) IsGestureEvent() bool {
	switch e.Type {
	case EventTypePressed, EventTypeDragStart, EventTypeDragRelease, EventTypeTap,
		EventTypeLongPress, EventTypeGestureAborted, EventTypeDismissed:
		return true
	default:
		return false
	}
}

// IsLifecycleEvent reports whether the event changed the surface attachment.
func (e OverlayEvent) IsLifecycleEvent() bool {
	switch e.Type {
	case EventTypeAttached, EventTypeDetached, EventTypeAttachRefused,
		EventTypeSurfaceLost, EventTypeStopped:
		return true
	default:
		return false
	}
}

// IsError reports whether the event carries an error.
func (e OverlayEvent) IsError() bool {
	return e.Type == EventTypeError || e.Error != nil
}
