package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/entrhq/vocab/pkg/overlay"
)

const (
	// SectionIDBubble is the identifier for the bubble settings section
	SectionIDBubble = "bubble"

	// Default values for bubble settings
	defaultBubbleEnabled      = true
	defaultBubbleTransparency = 100
	defaultBubbleVibration    = true
)

// BubbleSection holds the floating bubble's persisted state and preferences.
// X and Y are rewritten on every drag sample and settle frame.
type BubbleSection struct {
	Enabled      bool `json:"enabled"`
	X            int  `json:"x"`
	Y            int  `json:"y"`
	Size         int  `json:"size"`
	Transparency int  `json:"transparency"`
	Vibration    bool `json:"vibration"`
	mu           sync.RWMutex
}

// NewBubbleSection creates a bubble section with default settings.
func NewBubbleSection() *BubbleSection {
	s := &BubbleSection{}
	s.reset()
	return s
}

// ID returns the section identifier.
func (s *BubbleSection) ID() string {
	return SectionIDBubble
}

// Title returns the section title.
func (s *BubbleSection) Title() string {
	return "Bubble Settings"
}

// Description returns the section description.
func (s *BubbleSection) Description() string {
	return "Floating word bubble: on/off, last position, diameter (30-80), opacity percent (0-100) and haptic feedback."
}

// Data returns the current configuration data.
func (s *BubbleSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"enabled":      s.Enabled,
		"x":            s.X,
		"y":            s.Y,
		"size":         s.Size,
		"transparency": s.Transparency,
		"vibration":    s.Vibration,
	}
}

// SetData updates the configuration from the provided data.
func (s *BubbleSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "enabled", "vibration":
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for %s: expected bool, got %T", key, value)
			}
			if key == "enabled" {
				s.Enabled = b
			} else {
				s.Vibration = b
			}

		case "x", "y", "size", "transparency":
			n, err := toInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			switch key {
			case "x":
				s.X = n
			case "y":
				s.Y = n
			case "size":
				s.Size = n
			case "transparency":
				s.Transparency = max(overlay.MinOpacityPercent, min(100, n))
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *BubbleSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !overlay.ValidOverlaySize(s.Size) {
		return fmt.Errorf("size must be between %d and %d, got %d", overlay.MinOverlaySize, overlay.MaxOverlaySize, s.Size)
	}
	if s.Transparency < overlay.MinOpacityPercent || s.Transparency > 100 {
		return fmt.Errorf("transparency must be between %d and 100, got %d", overlay.MinOpacityPercent, s.Transparency)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *BubbleSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *BubbleSection) reset() {
	s.Enabled = defaultBubbleEnabled
	s.X = overlay.DefaultPosition.X
	s.Y = overlay.DefaultPosition.Y
	s.Size = overlay.DefaultOverlaySize
	s.Transparency = defaultBubbleTransparency
	s.Vibration = defaultBubbleVibration
}

// Position returns the last saved bubble position.
func (s *BubbleSection) Position() overlay.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return overlay.Position{X: s.X, Y: s.Y}
}

// SetPosition records a bubble position.
func (s *BubbleSection) SetPosition(pos overlay.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.X = pos.X
	s.Y = pos.Y
}

// GetSize returns the bubble diameter.
func (s *BubbleSection) GetSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Size
}

// SetSize sets the bubble diameter, clamped to the supported range.
func (s *BubbleSection) SetSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Size = overlay.ClampOverlaySize(size)
}

// IsEnabled reports whether the bubble is switched on.
func (s *BubbleSection) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Enabled
}

// SetEnabled switches the bubble on or off.
func (s *BubbleSection) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Enabled = enabled
}

// SetTransparency sets the opacity percent, clamped to
// [overlay.MinOpacityPercent, 100].
func (s *BubbleSection) SetTransparency(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transparency = max(overlay.MinOpacityPercent, min(100, percent))
}

// SetVibration toggles haptic feedback.
func (s *BubbleSection) SetVibration(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Vibration = enabled
}

// Settings converts the section into live overlay settings.
func (s *BubbleSection) Settings() overlay.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return overlay.Settings{
		Size:      overlay.ClampOverlaySize(s.Size),
		Alpha:     float64(max(overlay.MinOpacityPercent, min(100, s.Transparency))) / 100,
		Vibration: s.Vibration,
	}
}

// toInt accepts the numeric shapes JSON and YAML decoding produce.
func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers come as float64
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected whole number, got %v", v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
