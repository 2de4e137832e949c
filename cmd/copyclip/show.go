package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.copyclip.dev/copyclip/internal/instance"
)

func newShowCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Ask the running daemon to show its popup",
		Long: `Signals the running copyclip daemon to raise the history popup.

Useful as the target of a desktop-environment shortcut on Wayland, where
the daemon cannot register a global hotkey itself.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runShow(v) },
	}

	addDataDirFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runShow(v *viper.Viper) error {
	dataDir, err := resolveDataDir(v)
	if err != nil {
		return err
	}

	coord := instance.New(dataDir)
	if !coord.RequestShow() {
		return fmt.Errorf("no copyclip daemon is running (start one with \"copyclip run\")")
	}
	fmt.Println("show requested")
	return nil
}
