// Package clipboard provides the text clipboard the history daemon polls.
//
// It wraps golang.design/x/clipboard; when the display environment is
// unavailable (headless server, container) a no-op provider is substituted
// so the rest of the daemon keeps working. clipboard.Init is called at
// construction rather than in init() so read-only CLI sub-commands (list,
// show) never touch the display server.
package clipboard

import (
	"log/slog"
	"strings"

	"golang.design/x/clipboard"
)

// Provider is the clipboard surface the core consumes. Text only.
type Provider interface {
	// Name returns a human-readable name for the provider.
	Name() string

	// Read returns the current clipboard text. ok is false when the
	// clipboard is empty or unreadable.
	Read() (text string, ok bool)

	// Write replaces the clipboard text, reporting success.
	Write(text string) bool

	// CheckForChange returns the new text when the clipboard differs from
	// the last value this provider has seen, tracking it as seen.
	CheckForChange() (text string, changed bool)
}

type systemProvider struct {
	last string
}

// New returns the system clipboard provider, or a headless no-op provider
// if clipboard initialisation fails.
func New() Provider {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessProvider{}
	}
	p := &systemProvider{}
	// Seed with the current contents so pre-existing text is not recorded
	// as a fresh change at startup.
	if text, ok := p.Read(); ok {
		p.last = text
	}
	return p
}

func (p *systemProvider) Name() string { return "system clipboard" }

func (p *systemProvider) Read() (string, bool) {
	raw := clipboard.Read(clipboard.FmtText)
	if raw == nil {
		return "", false
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", false
	}
	return text, true
}

func (p *systemProvider) Write(text string) bool {
	clipboard.Write(clipboard.FmtText, []byte(text))
	p.last = text
	return true
}

func (p *systemProvider) CheckForChange() (string, bool) {
	text, ok := p.Read()
	if !ok || text == p.last {
		return "", false
	}
	p.last = text
	return text, true
}

// headlessProvider discards writes and never reports changes.
type headlessProvider struct{}

func (headlessProvider) Name() string                   { return "headless (no-op)" }
func (headlessProvider) Read() (string, bool)           { return "", false }
func (headlessProvider) Write(string) bool              { return false }
func (headlessProvider) CheckForChange() (string, bool) { return "", false }
