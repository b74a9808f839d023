package store

import (
	"sync"

	"github.com/asismo/idea-management-mvp/internal/idea"
)

// SettingsStore holds the single per-session settings record.
type SettingsStore struct {
	subscribers

	mu       sync.RWMutex
	settings idea.Settings
	loaded   bool
}

// NewSettingsStore creates an empty settings holder.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
// Field updates are applied in memory immediately and persisted afterwards;
// a persistence failure is reported but never rolled back.
type SettingsPatch struct {
	CategorizationMode     *idea.Mode `json:"categorization_mode,omitempty"`
	SearchMode             *idea.Mode `json:"search_mode,omitempty"`
	InputMethod            *string    `json:"input_method,omitempty"`
	AudioService           *string    `json:"audio_service,omitempty"`
	AudioAPIKey            *string    `json:"audio_api_key,omitempty"`
	Theme                  *string    `json:"theme,omitempty"`
	AutoUpdateDescriptions *bool      `json:"auto_update_descriptions,omitempty"`
	OnboardingCompleted    *bool      `json:"onboarding_completed,omitempty"`
	UpdatedAt              *int64     `json:"updated_at,omitempty"`
}

// Replace swaps in a full settings record (hydration or default creation).
func (s *SettingsStore) Replace(settings idea.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.loaded = true
	s.mu.Unlock()
	s.notify()
}

// Patch applies a partial update. Returns false if no record is loaded yet.
func (s *SettingsStore) Patch(patch SettingsPatch) bool {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false
	}
	if patch.CategorizationMode != nil {
		s.settings.CategorizationMode = *patch.CategorizationMode
	}
	if patch.SearchMode != nil {
		s.settings.SearchMode = *patch.SearchMode
	}
	if patch.InputMethod != nil {
		s.settings.InputMethod = *patch.InputMethod
	}
	if patch.AudioService != nil {
		s.settings.AudioService = *patch.AudioService
	}
	if patch.AudioAPIKey != nil {
		s.settings.AudioAPIKey = *patch.AudioAPIKey
	}
	if patch.Theme != nil {
		s.settings.Theme = *patch.Theme
	}
	if patch.AutoUpdateDescriptions != nil {
		s.settings.AutoUpdateDescriptions = *patch.AutoUpdateDescriptions
	}
	if patch.OnboardingCompleted != nil {
		s.settings.OnboardingCompleted = *patch.OnboardingCompleted
	}
	if patch.UpdatedAt != nil {
		s.settings.UpdatedAt = *patch.UpdatedAt
	}
	s.mu.Unlock()
	s.notify()
	return true
}

// Get returns the current settings record. The second return is false until
// a record has been loaded or created.
func (s *SettingsStore) Get() (idea.Settings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.loaded
}
