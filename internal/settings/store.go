// Package settings holds the persisted user preferences and the derived
// presentation state computed from them.
package settings

import (
	"sync"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/models"
)

// Partial carries the fields of an update; nil fields are left untouched.
type Partial struct {
	Theme          *models.Theme
	GlobalFontSize *models.FontSize
	SortBy         *models.SortMode
}

// Store owns the AppSettings singleton. Subscribers receive every new
// settings value over their channel, which is the single sync point for
// presentation state.
type Store struct {
	mu       sync.Mutex
	current  models.AppSettings
	adapter  *kv.Adapter
	watchers []chan models.AppSettings
}

// NewStore loads the persisted settings, falling back to the defaults.
func NewStore(adapter *kv.Adapter) *Store {
	return &Store{
		current: kv.Load(adapter, models.SettingsKey, models.DefaultSettings()),
		adapter: adapter,
	}
}

// Current returns the active settings.
func (s *Store) Current() models.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update shallow-merges the set fields of p into the current settings,
// persists the result, and notifies subscribers.
func (s *Store) Update(p Partial) models.AppSettings {
	s.mu.Lock()
	if p.Theme != nil {
		s.current.Theme = *p.Theme
	}
	if p.GlobalFontSize != nil {
		s.current.GlobalFontSize = *p.GlobalFontSize
	}
	if p.SortBy != nil {
		s.current.SortBy = *p.SortBy
	}
	updated := s.current
	watchers := append([]chan models.AppSettings{}, s.watchers...)
	s.mu.Unlock()

	kv.Save(s.adapter, models.SettingsKey, updated)
	for _, ch := range watchers {
		select {
		case ch <- updated:
		default: // slow subscriber, drop rather than block
		}
	}
	return updated
}

// Subscribe returns a channel that receives every settings change.
func (s *Store) Subscribe() <-chan models.AppSettings {
	ch := make(chan models.AppSettings, 1)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()
	return ch
}

// ThemeClasses computes the presentation class list for the given settings.
// It is a pure function: the effective theme is derived here and applied in
// one place instead of being scattered across the UI.
func ThemeClasses(s models.AppSettings) []string {
	classes := []string{string(s.Theme)}
	classes = append(classes, "global-font-"+string(s.GlobalFontSize))
	return classes
}
