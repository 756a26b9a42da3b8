package viewer

import (
	"errors"
	"sync"
)

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemePreferenceKey is the storage key of the persisted theme. The generated
// page uses the same key in localStorage.
const ThemePreferenceKey = "classview-theme"

// ParseTheme returns the theme named by s.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// PreferenceStore persists single string preferences.
type PreferenceStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// ErrNoPreference is returned by MemoryPreferences for unset keys.
var ErrNoPreference = errors.New("preference not set")

// MemoryPreferences is an in-process PreferenceStore.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryPreferences returns an empty MemoryPreferences.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (m *MemoryPreferences) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNoPreference
	}
	return v, nil
}

func (m *MemoryPreferences) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Theme returns the active theme.
func (v *Viewer) Theme() Theme {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.theme
}

// SetTheme applies theme and persists it. A failed write is logged and
// otherwise ignored; the next load falls back to the default.
func (v *Viewer) SetTheme(theme Theme) {
	if _, ok := ParseTheme(string(theme)); !ok {
		return
	}
	v.mu.Lock()
	v.theme = theme
	prefs := v.prefs
	v.mu.Unlock()

	if err := prefs.Set(ThemePreferenceKey, string(theme)); err != nil {
		v.logger.Warn("theme preference not saved", "theme", theme, "error", err)
	}
	v.notify(Change{Kind: ChangeTheme})
}

// ToggleTheme switches between light and dark.
func (v *Viewer) ToggleTheme() {
	next := ThemeDark
	if v.Theme() == ThemeDark {
		next = ThemeLight
	}
	v.SetTheme(next)
}

func (v *Viewer) loadTheme() Theme {
	stored, err := v.prefs.Get(ThemePreferenceKey)
	if err != nil {
		return ThemeLight
	}
	if t, ok := ParseTheme(stored); ok {
		return t
	}
	v.logger.Debug("ignoring unknown stored theme", "value", stored)
	return ThemeLight
}
