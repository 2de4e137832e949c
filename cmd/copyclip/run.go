package main

import (
	"context"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.copyclip.dev/copyclip/internal/app"
	"go.copyclip.dev/copyclip/internal/clipboard"
	"go.copyclip.dev/copyclip/internal/history"
	"go.copyclip.dev/copyclip/internal/instance"
	"go.copyclip.dev/copyclip/internal/paths"
	"go.copyclip.dev/copyclip/internal/settings"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard-history daemon",
		Long: `Starts the copyclip daemon: watches the clipboard, records history and
raises the popup on the global hotkey.

Only one instance runs at a time. If another instance already holds the
lock, this command asks it to show its popup and exits.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", app.DefaultPollInterval, "clipboard poll interval")
	f.String("hotkey", "", "hotkey preset override: super_v|ctrl_alt_v|super_c|ctrl_shift_v")
	f.Bool("no-hotkey", false, "do not register a global hotkey")
	addDataDirFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	dataDir, err := resolveDataDir(v)
	if err != nil {
		return err
	}

	coord := instance.New(dataDir)
	if !coord.Acquire() {
		// Hand off to the running instance instead of starting a second UI.
		pid, _ := coord.OwnerPID()
		slog.Info("another instance is running, asking it to show", "pid", pid)
		coord.RequestShow()
		return nil
	}
	defer coord.Release()

	slog.Info("copyclip starting", "version", Version, "data_dir", dataDir)

	sm := settings.Load(filepath.Join(dataDir, paths.SettingsFile))
	ledger := history.Load(filepath.Join(dataDir, paths.HistoryFile))
	provider := clipboard.New()

	daemon := app.New(app.Options{
		DataDir:      dataDir,
		PollInterval: v.GetDuration("poll-interval"),
		HotkeyPreset: v.GetString("hotkey"),
		NoHotkey:     v.GetBool("no-hotkey"),
	}, coord, ledger, sm, provider)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx)
}
