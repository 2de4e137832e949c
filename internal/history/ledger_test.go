package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	return Load(filepath.Join(t.TempDir(), "clipboard_history.json"))
}

func TestAddRejectsWhitespace(t *testing.T) {
	l := testLedger(t)

	assert.False(t, l.Add(""))
	assert.False(t, l.Add("   "))
	assert.False(t, l.Add("\n\t"))
	assert.Equal(t, 0, l.Len())
}

func TestAddDedupMovesToFront(t *testing.T) {
	l := testLedger(t)

	base := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	clock := base
	l.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	require.True(t, l.Add("hello"))
	helloTime := l.Clips()[0].CopiedAt
	require.True(t, l.Add("world"))
	require.Equal(t, 2, l.Len())

	// Re-adding existing content relocates, never duplicates.
	require.True(t, l.Add("hello"))
	assert.Equal(t, 2, l.Len())

	clips := l.Clips()
	assert.Equal(t, "hello", clips[0].Content)
	assert.Equal(t, "world", clips[1].Content)

	// Move-to-front keeps the original capture time.
	assert.True(t, clips[0].CopiedAt.Equal(helloTime))
}

func TestAddDedupPreservesPin(t *testing.T) {
	l := testLedger(t)

	require.True(t, l.Add("keep me"))
	require.True(t, l.TogglePin("keep me"))
	require.True(t, l.Add("other"))

	require.True(t, l.Add("keep me"))
	assert.True(t, l.Clips()[0].Pinned)
}

func TestTogglePinInvolution(t *testing.T) {
	l := testLedger(t)
	require.True(t, l.Add("clip"))

	assert.True(t, l.TogglePin("clip"))
	assert.False(t, l.TogglePin("clip"))
	assert.False(t, l.Clips()[0].Pinned)
}

func TestTogglePinMissingContent(t *testing.T) {
	l := testLedger(t)
	require.True(t, l.Add("clip"))

	assert.False(t, l.TogglePin("no such clip"))
	assert.Equal(t, 1, l.Len())
}

func TestRemove(t *testing.T) {
	l := testLedger(t)
	require.True(t, l.Add("a"))
	require.True(t, l.Add("b"))

	l.Remove("a")
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "b", l.Clips()[0].Content)

	// Removing missing content is a no-op.
	l.Remove("a")
	assert.Equal(t, 1, l.Len())
}

func TestClearUnpinnedIdempotent(t *testing.T) {
	l := testLedger(t)
	require.True(t, l.Add("pinned one"))
	require.True(t, l.Add("gone one"))
	require.True(t, l.Add("gone two"))
	require.True(t, l.TogglePin("pinned one"))

	l.ClearUnpinned()
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "pinned one", l.Clips()[0].Content)

	l.ClearUnpinned()
	assert.Equal(t, 1, l.Len())
}

func TestSortedViewPinnedFirstNewestWithin(t *testing.T) {
	l := testLedger(t)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	clock := base
	l.now = func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}

	require.True(t, l.Add("old unpinned"))
	require.True(t, l.Add("old pinned"))
	require.True(t, l.Add("new unpinned"))
	require.True(t, l.Add("new pinned"))
	require.True(t, l.TogglePin("old pinned"))
	require.True(t, l.TogglePin("new pinned"))

	view := l.SortedView()
	require.Len(t, view, 4)
	assert.Equal(t, "new pinned", view[0].Content)
	assert.Equal(t, "old pinned", view[1].Content)
	assert.Equal(t, "new unpinned", view[2].Content)
	assert.Equal(t, "old unpinned", view[3].Content)

	// Projection only — storage order still has most-recently-touched first.
	assert.Equal(t, "new pinned", l.Clips()[0].Content)
}

// The end-to-end sequence from the popup's point of view.
func TestScenario(t *testing.T) {
	l := testLedger(t)

	require.True(t, l.Add("hello"))
	require.True(t, l.Add("world"))
	require.True(t, l.Add("hello"))

	clips := l.Clips()
	require.Len(t, clips, 2)
	assert.Equal(t, "hello", clips[0].Content)
	assert.Equal(t, "world", clips[1].Content)

	assert.True(t, l.TogglePin("world"))
	l.ClearUnpinned()
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "world", l.Clips()[0].Content)
	assert.True(t, l.Clips()[0].Pinned)
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipboard_history.json")

	l := Load(path)
	require.True(t, l.Add("first"))
	require.True(t, l.Add("second"))
	require.True(t, l.TogglePin("first"))

	reloaded := Load(path)
	require.Equal(t, 2, reloaded.Len())

	want := l.Clips()
	got := reloaded.Clips()
	for i := range want {
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.Equal(t, want[i].Pinned, got[i].Pinned)
		assert.True(t, want[i].CopiedAt.Truncate(time.Millisecond).Equal(got[i].CopiedAt))
	}
}

func TestLoadRepairsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipboard_history.json")

	raw := `[
		{"content": "good", "timestamp": "10/03/25 09:30", "pinned": true},
		{"timestamp": "10/03/25 09:31", "pinned": false},
		{"content": "no pin field", "timestamp": "10/03/25 09:32"},
		"not even an object"
	]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	l := Load(path)
	require.Equal(t, 2, l.Len())

	good := l.Clips()[0]
	assert.Equal(t, "good", good.Content)
	assert.True(t, good.Pinned)
	// Legacy entries without copied_at recover the instant from the
	// display string.
	assert.Equal(t, "10/03/25 09:30", good.DisplayTime())

	assert.Equal(t, "no pin field", l.Clips()[1].Content)
	assert.False(t, l.Clips()[1].Pinned)
}

func TestClipJSONShape(t *testing.T) {
	c := Clip{
		Content:  "shape",
		CopiedAt: time.Date(2025, 12, 31, 23, 59, 0, 0, time.Local),
		Pinned:   true,
	}

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "shape", fields["content"])
	assert.Equal(t, "31/12/25 23:59", fields["timestamp"])
	assert.Equal(t, true, fields["pinned"])
	assert.Contains(t, fields, "copied_at")
}
