// Package paths resolves the per-user data directory and the fixed file
// names copyclip persists under it.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// DirName is the application directory created under the XDG data home.
const DirName = "clipboard-manager"

const (
	HistoryFile  = "clipboard_history.json"
	SettingsFile = "settings.json"
	LockFile     = ".lock"
	SignalFile   = ".show_signal"
)

// DataDir returns the data directory, creating it if needed. An empty
// override selects $XDG_DATA_HOME/clipboard-manager.
func DataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, DirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return dir, nil
}
