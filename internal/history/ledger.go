// Package history implements the clipboard history ledger: an ordered list
// of clips with dedup-by-content, pin state and a pinned-first view,
// persisted through internal/store after every mutation.
package history

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.copyclip.dev/copyclip/internal/store"
)

// DisplayTimeLayout is the human-facing timestamp format kept in the
// history file. It is not sortable; ordering uses the real instant.
const DisplayTimeLayout = "02/01/06 15:04"

// Clip is one recorded unit of copied text.
type Clip struct {
	Content  string
	CopiedAt time.Time
	Pinned   bool
}

// DisplayTime returns the clip's capture time in the display format.
func (c Clip) DisplayTime() string {
	return c.CopiedAt.Format(DisplayTimeLayout)
}

// clipJSON is the on-disk shape. The timestamp display string is kept for
// compatibility with older files; copied_at (epoch milliseconds) is the
// sortable instant.
type clipJSON struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	CopiedAt  int64  `json:"copied_at,omitempty"`
	Pinned    bool   `json:"pinned"`
}

// MarshalJSON implements json.Marshaler.
func (c Clip) MarshalJSON() ([]byte, error) {
	return json.Marshal(clipJSON{
		Content:   c.Content,
		Timestamp: c.DisplayTime(),
		CopiedAt:  c.CopiedAt.UnixMilli(),
		Pinned:    c.Pinned,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Records from older files carry
// only the display string; the instant is re-parsed from it best effort.
func (c *Clip) UnmarshalJSON(b []byte) error {
	var raw clipJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Content = raw.Content
	c.Pinned = raw.Pinned
	switch {
	case raw.CopiedAt != 0:
		c.CopiedAt = time.UnixMilli(raw.CopiedAt)
	case raw.Timestamp != "":
		t, err := time.ParseInLocation(DisplayTimeLayout, raw.Timestamp, time.Local)
		if err == nil {
			c.CopiedAt = t
		}
		// Unparseable timestamps leave the zero instant, which sorts last
		// within its pin group.
	}
	return nil
}

// Ledger owns the in-memory clip sequence. Most-recently-touched is index 0.
// Not safe for concurrent use; all calls must come from one goroutine.
type Ledger struct {
	st    *store.Store
	clips []Clip
	now   func() time.Time
}

// Load builds a Ledger backed by the history file at path, reading any
// existing records. Malformed entries are repaired or dropped with a
// warning rather than failing the load.
func Load(path string) *Ledger {
	l := &Ledger{st: store.New(path), now: time.Now}

	var raw []json.RawMessage
	if err := l.st.Load(&raw); err != nil {
		slog.Error("could not load history, starting empty", "path", path, "err", err)
		return l
	}

	for _, entry := range raw {
		var c Clip
		if err := json.Unmarshal(entry, &c); err != nil {
			slog.Warn("invalid history item dropped", "err", err)
			continue
		}
		if c.Content == "" {
			slog.Warn("history item without content dropped")
			continue
		}
		l.clips = append(l.clips, c)
	}
	return l
}

// Len returns the number of clips.
func (l *Ledger) Len() int { return len(l.clips) }

// Clips returns the storage-ordered sequence (most recently touched first).
func (l *Ledger) Clips() []Clip {
	out := make([]Clip, len(l.clips))
	copy(out, l.clips)
	return out
}

// Add records content at the front of the ledger. Whitespace-only content is
// rejected. If the content is already present its record moves to the front
// keeping its pin flag and original capture time. Returns whether the ledger
// changed.
func (l *Ledger) Add(content string) bool {
	if strings.TrimSpace(content) == "" {
		return false
	}

	for i, c := range l.clips {
		if c.Content == content {
			l.clips = append(l.clips[:i], l.clips[i+1:]...)
			l.clips = append([]Clip{c}, l.clips...)
			l.persist()
			return true
		}
	}

	l.clips = append([]Clip{{Content: content, CopiedAt: l.now()}}, l.clips...)
	l.persist()
	return true
}

// TogglePin flips the pin flag on the clip with exactly matching content and
// returns the new flag. Returns false without mutating if no clip matches.
func (l *Ledger) TogglePin(content string) bool {
	for i := range l.clips {
		if l.clips[i].Content == content {
			l.clips[i].Pinned = !l.clips[i].Pinned
			l.persist()
			return l.clips[i].Pinned
		}
	}
	return false
}

// Remove deletes every clip with exactly matching content.
func (l *Ledger) Remove(content string) {
	kept := l.clips[:0]
	for _, c := range l.clips {
		if c.Content != content {
			kept = append(kept, c)
		}
	}
	l.clips = kept
	l.persist()
}

// ClearUnpinned drops every unpinned clip. Pinned clips survive.
func (l *Ledger) ClearUnpinned() {
	kept := l.clips[:0]
	for _, c := range l.clips {
		if c.Pinned {
			kept = append(kept, c)
		}
	}
	l.clips = kept
	l.persist()
}

// Pinned returns the pinned clips in storage order.
func (l *Ledger) Pinned() []Clip {
	var out []Clip
	for _, c := range l.clips {
		if c.Pinned {
			out = append(out, c)
		}
	}
	return out
}

// SortedView returns pinned clips first, then unpinned, each group newest
// first. Pure projection; storage order is untouched.
func (l *Ledger) SortedView() []Clip {
	var pinned, unpinned []Clip
	for _, c := range l.clips {
		if c.Pinned {
			pinned = append(pinned, c)
		} else {
			unpinned = append(unpinned, c)
		}
	}
	byNewest := func(g []Clip) {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].CopiedAt.After(g[j].CopiedAt)
		})
	}
	byNewest(pinned)
	byNewest(unpinned)
	return append(pinned, unpinned...)
}

// persist rewrites the full history file. A failed save keeps the in-memory
// state authoritative until the next mutation retries it.
func (l *Ledger) persist() {
	clips := l.clips
	if clips == nil {
		clips = []Clip{} // keep the file a JSON array, not null
	}
	if err := l.st.Save(clips); err != nil {
		slog.Error("could not save history", "err", err)
	}
}
