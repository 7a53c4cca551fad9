package overlay

import "sync"

// MemoryStore is a PositionStore kept in memory. It outlives the Manager that
// uses it, so a restart can be simulated by building a new Manager over the
// same store.
type MemoryStore struct {
	mu      sync.Mutex
	pos     Position
	hasPos  bool
	size    int
	enabled bool
	saves   []Position

	// LoadErr, when set, is returned by Load and LoadSize.
	LoadErr error
}

// NewMemoryStore returns an enabled store with no saved position.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{size: DefaultOverlaySize, enabled: true}
}

// Load returns the saved position, or DefaultPosition if nothing was saved.
func (s *MemoryStore) Load() (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return Position{}, s.LoadErr
	}
	if !s.hasPos {
		return DefaultPosition, nil
	}
	return s.pos, nil
}

// Save records pos.
func (s *MemoryStore) Save(pos Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = pos
	s.hasPos = true
	s.saves = append(s.saves, pos)
}

// LoadSize returns the saved diameter.
func (s *MemoryStore) LoadSize() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return 0, s.LoadErr
	}
	return s.size, nil
}

// SaveSize records the diameter.
func (s *MemoryStore) SaveSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = size
}

// IsFeatureEnabled reports the enabled flag.
func (s *MemoryStore) IsFeatureEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// SetFeatureEnabled sets the enabled flag.
func (s *MemoryStore) SetFeatureEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

// Saves returns every position passed to Save, oldest first.
func (s *MemoryStore) Saves() []Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Position, len(s.saves))
	copy(out, s.saves)
	return out
}
