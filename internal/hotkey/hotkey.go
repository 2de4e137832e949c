// Package hotkey registers the global show-window shortcut.
//
// Bindings come from a small preset table rather than free-form key strings
// so the settings file can only name combinations that are known to work.
// The hook is X11-only; callers skip registration on Wayland sessions.
package hotkey

import (
	"log/slog"

	hook "github.com/robotn/gohook"
)

// Binding is one selectable hotkey preset.
type Binding struct {
	ID          string
	DisplayName string
	// Keys in gohook order: key first, then modifiers. gohook names the
	// super/meta key "cmd" on every platform.
	Keys []string
}

var presets = []Binding{
	{ID: "super_v", DisplayName: "Super+V", Keys: []string{"v", "cmd"}},
	{ID: "ctrl_alt_v", DisplayName: "Ctrl+Alt+V", Keys: []string{"v", "ctrl", "alt"}},
	{ID: "super_c", DisplayName: "Super+C", Keys: []string{"c", "cmd"}},
	{ID: "ctrl_shift_v", DisplayName: "Ctrl+Shift+V", Keys: []string{"v", "ctrl", "shift"}},
}

// DefaultPreset is used when the settings name an unknown preset.
const DefaultPreset = "super_v"

// Presets returns the selectable bindings in display order.
func Presets() []Binding {
	out := make([]Binding, len(presets))
	copy(out, presets)
	return out
}

// Lookup returns the binding for a preset id.
func Lookup(id string) (Binding, bool) {
	for _, b := range presets {
		if b.ID == id {
			return b, true
		}
	}
	return Binding{}, false
}

// Listener owns the global keyboard hook.
type Listener struct {
	events chan struct{}
	done   chan struct{}
}

// Listen registers binding as a global shortcut and returns a listener
// whose Events channel fires on each activation. An unknown preset id
// falls back to DefaultPreset with a warning.
func Listen(presetID string) *Listener {
	b, ok := Lookup(presetID)
	if !ok {
		slog.Warn("unknown hotkey preset, using default",
			"preset", presetID, "default", DefaultPreset)
		b, _ = Lookup(DefaultPreset)
	}

	l := &Listener{
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	hook.Register(hook.KeyDown, b.Keys, func(_ hook.Event) {
		select {
		case l.events <- struct{}{}:
		default:
		}
	})

	go func() {
		s := hook.Start()
		<-hook.Process(s)
		close(l.done)
	}()

	slog.Info("global hotkey registered", "binding", b.DisplayName)
	return l
}

// Events fires once per hotkey activation. Never closed while listening.
func (l *Listener) Events() <-chan struct{} { return l.events }

// Close unregisters the hook and stops the event loop.
func (l *Listener) Close() {
	hook.End()
	<-l.done
}
