package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.copyclip.dev/copyclip/internal/history"
	"go.copyclip.dev/copyclip/internal/paths"
)

// The history commands operate directly on the history file. While the
// daemon runs, its in-memory ledger is authoritative and will overwrite
// concurrent edits on its next mutation; prefer the popup UI then.

func loadLedger(v *viper.Viper) (*history.Ledger, error) {
	dataDir, err := resolveDataDir(v)
	if err != nil {
		return nil, err
	}
	return history.Load(filepath.Join(dataDir, paths.HistoryFile)), nil
}

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Print the clipboard history, pinned clips first",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runList(v) },
	}

	cmd.Flags().String("search", "", "filter clips by fuzzy match")
	addDataDirFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runList(v *viper.Viper) error {
	ledger, err := loadLedger(v)
	if err != nil {
		return err
	}

	clips := ledger.SortedView()
	if query := v.GetString("search"); query != "" {
		targets := make([]string, len(clips))
		for i, c := range clips {
			targets[i] = c.Content
		}
		matches := fuzzy.Find(query, targets)
		filtered := make([]history.Clip, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, clips[m.Index])
		}
		clips = filtered
	}

	if len(clips) == 0 {
		fmt.Println("history is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, c := range clips {
		marker := " "
		if c.Pinned {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", marker, c.DisplayTime(), oneLine(c.Content, 100))
	}
	return w.Flush()
}

func newPinCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "pin <text>",
		Short:   "Toggle the pin on the clip with exactly this text",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			ledger, err := loadLedger(v)
			if err != nil {
				return err
			}
			before := clipPinned(ledger, args[0])
			pinned := ledger.TogglePin(args[0])
			if !pinned && !before {
				return fmt.Errorf("no clip matches %q", args[0])
			}
			if pinned {
				fmt.Println("pinned")
			} else {
				fmt.Println("unpinned")
			}
			return nil
		},
	}

	addDataDirFlag(cmd)
	addConfigFlag(cmd)
	return cmd
}

func newRemoveCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "remove <text>",
		Short:   "Remove the clip with exactly this text",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			ledger, err := loadLedger(v)
			if err != nil {
				return err
			}
			before := ledger.Len()
			ledger.Remove(args[0])
			fmt.Printf("removed %d clip(s)\n", before-ledger.Len())
			return nil
		},
	}

	addDataDirFlag(cmd)
	addConfigFlag(cmd)
	return cmd
}

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Remove all unpinned clips",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, _ []string) error {
			ledger, err := loadLedger(v)
			if err != nil {
				return err
			}
			before := ledger.Len()
			ledger.ClearUnpinned()
			fmt.Printf("cleared %d clip(s), %d pinned kept\n", before-ledger.Len(), ledger.Len())
			return nil
		},
	}

	addDataDirFlag(cmd)
	addConfigFlag(cmd)
	return cmd
}

// clipPinned reports the current pin flag of the clip with this content.
func clipPinned(l *history.Ledger, content string) bool {
	for _, c := range l.Clips() {
		if c.Content == content && c.Pinned {
			return true
		}
	}
	return false
}

// oneLine collapses text to a single line capped at n runes.
func oneLine(s string, n int) string {
	flat := strings.Join(strings.Fields(s), " ")
	runes := []rune(flat)
	if len(runes) <= n {
		return flat
	}
	return string(runes[:n]) + "…"
}
