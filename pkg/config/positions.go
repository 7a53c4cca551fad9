package config

import (
	"fmt"
	"sync"

	"github.com/entrhq/vocab/pkg/logging"
	"github.com/entrhq/vocab/pkg/overlay"
)

// PositionStore persists the bubble through the bubble config section.
//
// Writes update the section in memory immediately and wake a background
// writer that saves the whole configuration. Bursts of writes collapse into
// one save, so drag and animation frames never wait on the disk.
type PositionStore struct {
	manager *Manager
	bubble  *BubbleSection
	log     *logging.Logger

	pending chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	flushMu   sync.Mutex
	errMu     sync.Mutex
	lastErr   error
}

// PositionStoreOption configures a PositionStore.
type PositionStoreOption func(*PositionStore)

// WithStoreLogger routes background save failures to a logger.
func WithStoreLogger(l *logging.Logger) PositionStoreOption {
	return func(s *PositionStore) {
		s.log = l
	}
}

// NewPositionStore starts a store over the manager's bubble section.
func NewPositionStore(manager *Manager, opts ...PositionStoreOption) (*PositionStore, error) {
	section, ok := manager.GetSection(SectionIDBubble)
	if !ok {
		return nil, fmt.Errorf("section %q not registered", SectionIDBubble)
	}
	bubble, ok := section.(*BubbleSection)
	if !ok {
		return nil, fmt.Errorf("section %q has unexpected type %T", SectionIDBubble, section)
	}

	s := &PositionStore{
		manager: manager,
		bubble:  bubble,
		log:     logging.Discard(),
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.writer()
	return s, nil
}

// Load returns the last saved position.
func (s *PositionStore) Load() (overlay.Position, error) {
	return s.bubble.Position(), nil
}

// Save records pos and schedules a background save.
func (s *PositionStore) Save(pos overlay.Position) {
	s.bubble.SetPosition(pos)
	s.schedule()
}

// LoadSize returns the saved diameter.
func (s *PositionStore) LoadSize() (int, error) {
	return s.bubble.GetSize(), nil
}

// SaveSize records the diameter and schedules a background save.
func (s *PositionStore) SaveSize(size int) {
	s.bubble.SetSize(size)
	s.schedule()
}

// IsFeatureEnabled reports whether the bubble is switched on.
func (s *PositionStore) IsFeatureEnabled() bool {
	return s.bubble.IsEnabled()
}

// SetFeatureEnabled switches the bubble on or off and schedules a save.
func (s *PositionStore) SetFeatureEnabled(enabled bool) {
	s.bubble.SetEnabled(enabled)
	s.schedule()
}

// Flush saves the configuration now.
func (s *PositionStore) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	err := s.manager.SaveAll()

	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()
	return err
}

// Err returns the result of the most recent save.
func (s *PositionStore) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

// Close stops the background writer and saves once more.
func (s *PositionStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		err = s.Flush()
	})
	return err
}

func (s *PositionStore) schedule() {
	select {
	case s.pending <- struct{}{}:
	default:
		// a save is already queued and will pick up this change
	}
}

func (s *PositionStore) writer() {
	defer s.wg.Done()
	for {
		select {
		case <-s.pending:
			if err := s.Flush(); err != nil {
				s.log.Errorf("failed to save bubble state: %v", err)
			}
		case <-s.done:
			return
		}
	}
}
