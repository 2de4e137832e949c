// Package store persists a single JSON document (the history list, the
// settings map) to a fixed path with a rotating .backup sibling.
//
// Failure handling is deliberately forgiving: a missing file yields the
// caller's default document, a corrupt file is quarantined under a
// timestamped name for forensics, and a failed write attempts to restore
// the previous backup. None of these paths return a parse error to the
// caller — the in-memory state stays authoritative.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// BackupSuffix is appended to the target path for the pre-write backup.
const BackupSuffix = ".backup"

const corruptedStamp = "20060102150405"

// Store persists one JSON document at a fixed path.
type Store struct {
	path string
	now  func() time.Time
}

// New returns a Store writing to path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the target path.
func (s *Store) Path() string { return s.path }

// BackupPath returns the path of the rotating backup sibling.
func (s *Store) BackupPath() string { return s.path + BackupSuffix }

// Exists reports whether the target file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the document into doc. If the file does not exist, doc is left
// untouched and nil is returned. If the file exists but does not parse, it
// is renamed to <path>.corrupted_<timestamp> and doc is left untouched —
// parse failures never reach the caller. Only unexpected I/O errors are
// returned.
func (s *Store) Load(doc any) error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(raw, doc); err != nil {
		s.quarantine(err)
		return nil
	}
	return nil
}

// quarantine renames the unparseable file aside, preserving its bytes.
func (s *Store) quarantine(cause error) {
	quarantined := fmt.Sprintf("%s.corrupted_%s", s.path, s.now().Format(corruptedStamp))
	if err := os.Rename(s.path, quarantined); err != nil {
		slog.Error("could not quarantine corrupt file", "path", s.path, "err", err)
		return
	}
	slog.Warn("corrupt file quarantined, using defaults",
		"path", s.path,
		"quarantined", quarantined,
		"cause", cause,
	)
}

// Save writes doc to the target path. An existing target is first rotated to
// the .backup sibling (replacing any previous backup); if the write then
// fails, the backup is restored best-effort.
func (s *Store) Save(doc any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	backedUp := false
	if s.Exists() {
		if err := os.Rename(s.path, s.BackupPath()); err != nil {
			slog.Warn("could not rotate backup", "path", s.path, "err", err)
		} else {
			backedUp = true
		}
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		if backedUp {
			if rerr := os.Rename(s.BackupPath(), s.path); rerr != nil {
				slog.Error("could not restore backup after failed write",
					"path", s.path, "err", rerr)
			}
		}
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
