package ui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.copyclip.dev/copyclip/internal/history"
)

// fakeProvider records writes without touching a real clipboard.
type fakeProvider struct {
	written []string
}

func (f *fakeProvider) Name() string { return "fake" }
func (f *fakeProvider) Read() (string, bool) {
	if len(f.written) == 0 {
		return "", false
	}
	return f.written[len(f.written)-1], true
}
func (f *fakeProvider) Write(text string) bool {
	f.written = append(f.written, text)
	return true
}
func (f *fakeProvider) CheckForChange() (string, bool) { return "", false }

func testModel(t *testing.T, contents ...string) (Model, *history.Ledger, *fakeProvider) {
	t.Helper()
	ledger := history.Load(filepath.Join(t.TempDir(), "clipboard_history.json"))
	for _, c := range contents {
		require.True(t, ledger.Add(c))
	}
	provider := &fakeProvider{}
	return New(ledger, provider, "dark"), ledger, provider
}

func TestFilterEmptyQueryShowsEverything(t *testing.T) {
	m, _, _ := testModel(t, "alpha", "beta", "gamma")
	assert.Len(t, m.filtered, 3)
}

func TestFilterNarrowsByFuzzyMatch(t *testing.T) {
	m, _, _ := testModel(t, "deploy notes", "grocery list", "deploy script")

	m.search.SetValue("deploy")
	m.applyFilter()

	require.Len(t, m.filtered, 2)
	for _, c := range m.filtered {
		assert.Contains(t, c.Content, "deploy")
	}

	m.search.SetValue("zzzz")
	m.applyFilter()
	assert.Empty(t, m.filtered)
}

func TestViewListsPinnedFirst(t *testing.T) {
	m, ledger, _ := testModel(t, "unpinned newer", "will pin")
	require.True(t, ledger.TogglePin("will pin"))
	m.refresh()

	require.Len(t, m.filtered, 2)
	assert.Equal(t, "will pin", m.filtered[0].Content)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "one line", preview("one\nline"))
	assert.Equal(t, "tabs and spaces", preview("tabs\t and   spaces"))

	long := strings.Repeat("x", maxPreviewChars+10)
	got := preview(long)
	assert.Equal(t, maxPreviewChars+1, len([]rune(got))) // capped plus ellipsis
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestSelectedOutOfRange(t *testing.T) {
	m, _, _ := testModel(t)
	_, ok := m.selected()
	assert.False(t, ok)
}
