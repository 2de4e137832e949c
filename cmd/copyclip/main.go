// copyclip: clipboard history with pins, search and a hotkey popup.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.copyclip.dev/copyclip/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "copyclip",
		Short: "Clipboard history manager",
		Long: `copyclip watches the system clipboard and records a history of copied
text. Pin favourites to protect them from clearing, search the history, and
re-copy any clip from a hotkey-activated popup.

Run "copyclip run" to start the daemon. A second "copyclip run" (or
"copyclip show") asks the running instance to raise its popup and exits.

History and settings live under $XDG_DATA_HOME/clipboard-manager.

All flags can be set via COPYCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newShowCmd(),
		newListCmd(),
		newPinCmd(),
		newRemoveCmd(),
		newClearCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("copyclip %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(format, level)
}
