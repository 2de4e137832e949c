package ui

import "github.com/charmbracelet/lipgloss"

// palette holds the theme colors for the popup.
type palette struct {
	title    lipgloss.Style
	selected lipgloss.Style
	normal   lipgloss.Style
	pinned   lipgloss.Style
	stamp    lipgloss.Style
	help     lipgloss.Style
	status   lipgloss.Style
}

func newPalette(theme string) palette {
	switch theme {
	case "light":
		return palette{
			title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A1A2E")),
			selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3B5BDB")),
			normal:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2B2B2B")),
			pinned:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B54708")),
			stamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
			help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
			status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2F9E44")),
		}
	default: // dark, and "system" until terminal background detection exists
		return palette{
			title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8E8F0")),
			selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A1A2E")).Background(lipgloss.Color("#74C0FC")),
			normal:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C8D0")),
			pinned:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD43B")),
			stamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C80")),
			help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8888A0")),
			status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#69DB7C")),
		}
	}
}
