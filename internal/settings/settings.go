// Package settings manages the persisted application settings document.
//
// The document is a flat JSON object. Known keys are strongly typed and
// validated against an option table; unknown keys are preserved verbatim
// across saves so newer versions of the file survive a round trip through
// an older binary.
package settings

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"go.copyclip.dev/copyclip/internal/store"
)

// Theme names.
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// Typed setting keys.
const (
	KeyTheme             = "theme"
	KeyWindowPinned      = "window_pinned"
	KeyHotkey            = "hotkey"
	KeyFirstRunCompleted = "first_run_completed"
	KeySessionType       = "session_type"
)

// Defaults returns the hard-coded default document.
func Defaults() map[string]any {
	return map[string]any{
		KeyTheme:             ThemeDark,
		KeyWindowPinned:      false,
		KeyHotkey:            "super_v",
		KeyFirstRunCompleted: false,
	}
}

var validThemes = map[string]bool{
	ThemeDark:   true,
	ThemeLight:  true,
	ThemeSystem: true,
}

// Manager loads, validates and persists the settings document.
type Manager struct {
	st *store.Store

	theme             string
	windowPinned      bool
	hotkey            string
	firstRunCompleted bool
	sessionType       string

	// keys present in the file that this version does not know about
	extra map[string]json.RawMessage

	fileExisted bool
}

// Load reads the settings file at path, merging it over the defaults.
// A corrupt file is quarantined by the store and the defaults are used;
// Load never fails.
func Load(path string) *Manager {
	m := &Manager{st: store.New(path), extra: map[string]json.RawMessage{}}
	m.applyDefaults()
	m.fileExisted = m.st.Exists()

	raw := map[string]json.RawMessage{}
	if err := m.st.Load(&raw); err != nil {
		slog.Error("could not load settings, using defaults", "path", path, "err", err)
		return m
	}
	if !m.fileExisted {
		slog.Info("settings file not found, using defaults", "path", path)
		return m
	}

	for key, val := range raw {
		switch key {
		case KeyTheme:
			m.theme = decodeString(key, val, m.theme)
			if !validThemes[m.theme] {
				slog.Warn("unknown theme, using default", "theme", m.theme)
				m.theme = ThemeDark
			}
		case KeyWindowPinned:
			m.windowPinned = decodeBool(key, val, m.windowPinned)
		case KeyHotkey:
			m.hotkey = decodeString(key, val, m.hotkey)
		case KeyFirstRunCompleted:
			m.firstRunCompleted = decodeBool(key, val, m.firstRunCompleted)
		case KeySessionType:
			m.sessionType = decodeString(key, val, m.sessionType)
		default:
			m.extra[key] = val
		}
	}
	return m
}

func (m *Manager) applyDefaults() {
	m.theme = ThemeDark
	m.windowPinned = false
	m.hotkey = "super_v"
	m.firstRunCompleted = false
}

func decodeString(key string, raw json.RawMessage, fallback string) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("setting has wrong type, using default", "key", key)
		return fallback
	}
	return s
}

func decodeBool(key string, raw json.RawMessage, fallback bool) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		slog.Warn("setting has wrong type, using default", "key", key)
		return fallback
	}
	return b
}

// Theme returns the configured theme name.
func (m *Manager) Theme() string { return m.theme }

// SetTheme stores and persists the theme name.
func (m *Manager) SetTheme(theme string) {
	if !validThemes[theme] {
		slog.Warn("refusing unknown theme", "theme", theme)
		return
	}
	m.theme = theme
	m.save()
}

// WindowPinned reports the always-on-top flag.
func (m *Manager) WindowPinned() bool { return m.windowPinned }

// SetWindowPinned stores and persists the always-on-top flag.
func (m *Manager) SetWindowPinned(pinned bool) {
	m.windowPinned = pinned
	m.save()
}

// Hotkey returns the configured hotkey preset id.
func (m *Manager) Hotkey() string { return m.hotkey }

// SetHotkey stores and persists the hotkey preset id.
func (m *Manager) SetHotkey(preset string) {
	m.hotkey = preset
	m.save()
}

// IsFirstRun reports whether the application has completed a first run. A
// missing settings file always counts as a first run.
func (m *Manager) IsFirstRun() bool {
	if !m.fileExisted {
		return true
	}
	return !m.firstRunCompleted
}

// MarkFirstRunCompleted records that the first run finished.
func (m *Manager) MarkFirstRunCompleted() {
	m.firstRunCompleted = true
	m.save()
}

// SessionType returns the cached display session type, detecting and
// persisting it on first use.
func (m *Manager) SessionType() string {
	if m.sessionType == "" {
		m.sessionType = DetectSessionType()
		m.save()
	}
	return m.sessionType
}

// save rewrites the settings file, typed keys plus preserved unknown keys.
func (m *Manager) save() {
	doc := make(map[string]any, len(m.extra)+5)
	for k, v := range m.extra {
		doc[k] = v
	}
	doc[KeyTheme] = m.theme
	doc[KeyWindowPinned] = m.windowPinned
	doc[KeyHotkey] = m.hotkey
	doc[KeyFirstRunCompleted] = m.firstRunCompleted
	if m.sessionType != "" {
		doc[KeySessionType] = m.sessionType
	}
	if err := m.st.Save(doc); err != nil {
		slog.Error("could not save settings", "err", err)
		return
	}
	m.fileExisted = true
}

// DetectSessionType reports "x11", "wayland" or "unknown" from the session
// environment.
func DetectSessionType() string {
	switch strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) {
	case "x11":
		return "x11"
	case "wayland":
		return "wayland"
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}
	if os.Getenv("DISPLAY") != "" {
		return "x11"
	}
	return "unknown"
}
