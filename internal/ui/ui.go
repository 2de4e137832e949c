// Package ui renders the clipboard-history popup as a terminal UI: the
// ledger's pinned-first view with fuzzy search, pinning, removal and
// copy-on-enter.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"go.copyclip.dev/copyclip/internal/clipboard"
	"go.copyclip.dev/copyclip/internal/history"
)

// maxPreviewChars caps the single-line preview per clip.
const maxPreviewChars = 100

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmClear
)

// Model is the bubbletea model for the popup.
type Model struct {
	ledger   *history.Ledger
	provider clipboard.Provider

	items    []history.Clip
	filtered []history.Clip
	cursor   int

	search      textinput.Model
	currentMode mode

	width  int
	height int
	status string

	pal palette
}

// New builds the popup model over the ledger's current sorted view.
func New(ledger *history.Ledger, provider clipboard.Provider, theme string) Model {
	search := textinput.New()
	search.Placeholder = "Search clips..."
	search.Prompt = "/ "
	search.CharLimit = 256

	m := Model{
		ledger:   ledger,
		provider: provider,
		search:   search,
		pal:      newPalette(theme),
	}
	m.refresh()
	return m
}

// Run shows the popup and blocks until it closes.
func Run(ledger *history.Ledger, provider clipboard.Provider, theme string) error {
	_, err := tea.NewProgram(New(ledger, provider, theme), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads the sorted view and re-applies the current filter.
func (m *Model) refresh() {
	m.items = m.ledger.SortedView()
	m.applyFilter()
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// applyFilter narrows items by the search query using fuzzy matching.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		m.filtered = m.items
		return
	}
	targets := make([]string, len(m.items))
	for i, c := range m.items {
		targets[i] = c.Content
	}
	matches := fuzzy.Find(query, targets)
	m.filtered = make([]history.Clip, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.items[match.Index])
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.currentMode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmClear:
			return m.updateConfirmClear(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case "enter":
		if clip, ok := m.selected(); ok {
			if m.provider.Write(clip.Content) {
				m.ledger.Add(clip.Content)
				return m, tea.Quit
			}
			m.status = "could not write to clipboard"
		}

	case "p":
		if clip, ok := m.selected(); ok {
			pinned := m.ledger.TogglePin(clip.Content)
			if pinned {
				m.status = "pinned"
			} else {
				m.status = "unpinned"
			}
			m.refresh()
		}

	case "d", "x":
		if clip, ok := m.selected(); ok {
			m.ledger.Remove(clip.Content)
			m.status = "removed"
			m.refresh()
		}

	case "C":
		m.currentMode = modeConfirmClear

	case "/":
		m.currentMode = modeSearch
		m.search.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentMode = modeList
		m.search.SetValue("")
		m.search.Blur()
		m.applyFilter()
		return m, nil
	case "enter":
		m.currentMode = modeList
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	m.cursor = 0
	return m, cmd
}

func (m Model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.ledger.ClearUnpinned()
		m.status = "cleared unpinned clips"
		m.refresh()
	case "ctrl+c":
		return m, tea.Quit
	}
	m.currentMode = modeList
	return m, nil
}

func (m Model) selected() (history.Clip, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return history.Clip{}, false
	}
	return m.filtered[m.cursor], true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.pal.title.Render("Clipboard History"))
	b.WriteString("\n")

	if m.currentMode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		if m.search.Value() != "" {
			b.WriteString(m.pal.help.Render("No results found matching your search."))
		} else {
			b.WriteString(m.pal.help.Render("History is empty — copy something."))
		}
		b.WriteString("\n")
	}

	visible := m.visibleRows()
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.filtered) && i < start+visible; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.currentMode {
	case modeConfirmClear:
		b.WriteString(m.pal.help.Render("Remove all non-pinned items? (y/N)"))
	default:
		if m.status != "" {
			b.WriteString(m.pal.status.Render(m.status))
			b.WriteString("  ")
		}
		b.WriteString(m.pal.help.Render("enter copy · p pin · d remove · / search · C clear · q quit"))
	}
	return b.String()
}

func (m Model) visibleRows() int {
	rows := m.height - 6
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m Model) renderRow(i int) string {
	clip := m.filtered[i]

	marker := "  "
	if clip.Pinned {
		marker = m.pal.pinned.Render("● ")
	}

	line := fmt.Sprintf("%s %s", m.pal.stamp.Render(clip.DisplayTime()), preview(clip.Content))
	if i == m.cursor {
		return marker + m.pal.selected.Render(line)
	}
	return marker + m.pal.normal.Render(line)
}

// preview collapses a clip to one line capped at maxPreviewChars runes.
func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= maxPreviewChars {
		return flat
	}
	return string(runes[:maxPreviewChars]) + "…"
}
