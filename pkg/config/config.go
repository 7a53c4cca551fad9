package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// NewDefaultManager builds a manager over store with the bubble and
// wordinfo sections registered and loaded.
func NewDefaultManager(store Store) (*Manager, error) {
	manager := NewManager(store)

	if err := manager.RegisterSection(NewBubbleSection()); err != nil {
		return nil, err
	}
	if err := manager.RegisterSection(NewWordInfoSection()); err != nil {
		return nil, err
	}

	if err := manager.LoadAll(); err != nil {
		return nil, err
	}
	return manager, nil
}

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager, err := NewDefaultManager(store)
	if err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetBubble returns the bubble section from global config.
// Returns nil if config is not initialized.
func GetBubble() *BubbleSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDBubble)
	if !ok {
		return nil
	}

	bubble, ok := section.(*BubbleSection)
	if !ok {
		return nil
	}

	return bubble
}

// GetWordInfo returns the word lookup section from global config.
// Returns nil if config is not initialized.
func GetWordInfo() *WordInfoSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDWordInfo)
	if !ok {
		return nil
	}

	wordInfo, ok := section.(*WordInfoSection)
	if !ok {
		return nil
	}

	return wordInfo
}
