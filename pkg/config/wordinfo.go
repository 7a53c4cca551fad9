package config

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// SectionIDWordInfo is the identifier for the word lookup settings section
	SectionIDWordInfo = "wordinfo"

	defaultSourceLanguage = "English"
	defaultTargetLanguage = "Ukrainian"
)

// WordInfoSection configures the word lookup backend used by the add-word flow.
type WordInfoSection struct {
	Model          string
	BaseURL        string
	APIKey         string
	SourceLanguage string
	TargetLanguage string
	mu             sync.RWMutex
}

// NewWordInfoSection creates a new word lookup section with default settings.
func NewWordInfoSection() *WordInfoSection {
	return &WordInfoSection{
		SourceLanguage: defaultSourceLanguage,
		TargetLanguage: defaultTargetLanguage,
	}
}

// ID returns the section identifier.
func (s *WordInfoSection) ID() string {
	return SectionIDWordInfo
}

// Title returns the section title.
func (s *WordInfoSection) Title() string {
	return "Word Lookup"
}

// Description returns the section description.
func (s *WordInfoSection) Description() string {
	return "OpenAI-compatible endpoint used to translate and explain words added from the bubble. model, base_url and api_key may be overridden by flags or environment."
}

// Data returns the current configuration data.
func (s *WordInfoSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"model":           s.Model,
		"base_url":        s.BaseURL,
		"api_key":         s.APIKey,
		"source_language": s.SourceLanguage,
		"target_language": s.TargetLanguage,
	}
}

// SetData updates the configuration from the provided data.
func (s *WordInfoSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if model, ok := data["model"].(string); ok {
		s.Model = model
	}
	if baseURL, ok := data["base_url"].(string); ok {
		s.BaseURL = baseURL
	}
	if apiKey, ok := data["api_key"].(string); ok {
		s.APIKey = apiKey
	}
	if lang, ok := data["source_language"].(string); ok {
		s.SourceLanguage = lang
	}
	if lang, ok := data["target_language"].(string); ok {
		s.TargetLanguage = lang
	}

	return nil
}

// Validate validates the current configuration.
// Endpoint settings are optional here and checked when a client is built.
func (s *WordInfoSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(s.SourceLanguage) == "" {
		return fmt.Errorf("source_language must not be empty")
	}
	if strings.TrimSpace(s.TargetLanguage) == "" {
		return fmt.Errorf("target_language must not be empty")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *WordInfoSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Model = ""
	s.BaseURL = ""
	s.APIKey = ""
	s.SourceLanguage = defaultSourceLanguage
	s.TargetLanguage = defaultTargetLanguage
}

// GetModel returns the configured model name.
func (s *WordInfoSection) GetModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Model
}

// GetBaseURL returns the configured base URL.
func (s *WordInfoSection) GetBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BaseURL
}

// GetAPIKey returns the configured API key.
func (s *WordInfoSection) GetAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.APIKey
}

// Languages returns the source and target languages.
func (s *WordInfoSection) Languages() (source, target string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SourceLanguage, s.TargetLanguage
}

// SetLanguages sets the source and target languages.
func (s *WordInfoSection) SetLanguages(source, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SourceLanguage = source
	s.TargetLanguage = target
}
