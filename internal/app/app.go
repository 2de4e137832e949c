// Package app runs the copyclip daemon: one event loop that owns the
// history ledger, polls the clipboard, consumes show-window signals and
// raises the popup UI.
//
// All ledger, settings and store calls happen from this single loop — those
// components carry no locking of their own.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"

	"go.copyclip.dev/copyclip/internal/clipboard"
	"go.copyclip.dev/copyclip/internal/history"
	"go.copyclip.dev/copyclip/internal/hotkey"
	"go.copyclip.dev/copyclip/internal/instance"
	"go.copyclip.dev/copyclip/internal/settings"
	"go.copyclip.dev/copyclip/internal/ui"
)

// DefaultPollInterval matches the 1s clipboard check cadence the popup's
// human-paced usage expects.
const DefaultPollInterval = time.Second

// Options configures a Daemon.
type Options struct {
	DataDir      string
	PollInterval time.Duration
	// HotkeyPreset overrides the persisted preset when non-empty.
	HotkeyPreset string
	// NoHotkey disables global hotkey registration entirely.
	NoHotkey bool
}

// Daemon owns the ledger and the event loop around it.
type Daemon struct {
	opts     Options
	coord    *instance.Coordinator
	ledger   *history.Ledger
	settings *settings.Manager
	provider clipboard.Provider
}

// New assembles a daemon from loaded components.
func New(opts Options, coord *instance.Coordinator, ledger *history.Ledger,
	sm *settings.Manager, provider clipboard.Provider) *Daemon {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Daemon{
		opts:     opts,
		coord:    coord,
		ledger:   ledger,
		settings: sm,
		provider: provider,
	}
}

// Run blocks until ctx is cancelled, driving the poll loop.
func (d *Daemon) Run(ctx context.Context) error {
	if d.settings.IsFirstRun() {
		slog.Info("first run, welcome to copyclip",
			"data_dir", d.opts.DataDir,
			"hotkey", d.settings.Hotkey(),
		)
		d.settings.MarkFirstRunCompleted()
	}

	slog.Info("copyclip daemon started",
		"provider", d.provider.Name(),
		"clips", d.ledger.Len(),
		"poll_interval", d.opts.PollInterval,
		"session", d.settings.SessionType(),
	)

	hotkeyCh := d.listenHotkey()
	watchCh := d.watchSignalFile(ctx)

	ticker := time.NewTicker(d.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("copyclip daemon stopping")
			return nil

		case <-ticker.C:
			if text, changed := d.provider.CheckForChange(); changed {
				if d.ledger.Add(text) {
					slog.Debug("clip recorded", "clips", d.ledger.Len())
				}
			}
			if d.coord.ConsumeShowSignal() {
				d.show()
			}

		case <-watchCh:
			// The marker appeared; the consume call stays the single point
			// of truth so the edge-triggered contract holds.
			if d.coord.ConsumeShowSignal() {
				d.show()
			}

		case <-hotkeyCh:
			d.show()
		}
	}
}

// listenHotkey registers the global shortcut unless disabled or running
// under Wayland, where the X11 hook cannot see key events.
func (d *Daemon) listenHotkey() <-chan struct{} {
	if d.opts.NoHotkey {
		return nil
	}
	if d.settings.SessionType() == "wayland" {
		slog.Warn("wayland session, global hotkey disabled; bind a desktop shortcut to 'copyclip show' instead")
		return nil
	}
	preset := d.opts.HotkeyPreset
	if preset == "" {
		preset = d.settings.Hotkey()
	}
	return hotkey.Listen(preset).Events()
}

// watchSignalFile watches the data dir for the show-signal marker so a
// hand-off surfaces the popup without waiting out a poll tick. The ticker
// remains the fallback when the watch cannot be established.
func (d *Daemon) watchSignalFile(ctx context.Context) <-chan struct{} {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("signal file watch unavailable, polling only", "err", err)
		return nil
	}
	if err := watcher.Add(d.opts.DataDir); err != nil {
		slog.Warn("signal file watch unavailable, polling only", "err", err)
		_ = watcher.Close()
		return nil
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name == d.coord.SignalPath() && ev.Op.Has(fsnotify.Create) {
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("signal file watch error", "err", err)
			}
		}
	}()
	return ch
}

// show raises the popup UI. Without a terminal to draw on the request is
// logged and dropped.
func (d *Daemon) show() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		slog.Info("show requested, but no terminal is attached")
		return
	}
	slog.Debug("showing history popup")
	if err := ui.Run(d.ledger, d.provider, d.settings.Theme()); err != nil {
		slog.Error("popup failed", "err", err)
	}
}
