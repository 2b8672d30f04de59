package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the TUI chrome. The list itself is
// styled by surface.RenderOptions.
type Styles struct {
	Status   lipgloss.Style
	Empty    lipgloss.Style
	HintKey  lipgloss.Style // Key portion of hints (e.g., "j/k")
	HintDesc lipgloss.Style // Description portion of hints (e.g., "move")
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}

	return Styles{
		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
	}
}
