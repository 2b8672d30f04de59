package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "keep")
}

// Hint bars per mode, in display order: navigation, actions, edits, system.
var (
	normalHints = []Hint{
		{Key: "j/k", Desc: "move"},
		{Key: "gg/G", Desc: "top/bottom"},
		{Key: "/", Desc: "filter"},
		{Key: "o", Desc: "sort"},
		{Key: "space", Desc: "mark"},
		{Key: "J/K", Desc: "shift"},
		{Key: "d", Desc: "del"},
		{Key: "y", Desc: "yank"},
		{Key: "q", Desc: "quit"},
	}
	filterHints = []Hint{
		{Key: "Enter", Desc: "keep"},
		{Key: "Esc", Desc: "clear"},
	}
)

// contextualHints returns the hint bar for the current mode.
func (a App) contextualHints() []Hint {
	if a.mode == ModeFilter {
		return filterHints
	}
	return normalHints
}

// renderHints renders hints as "key:desc" pairs: "j/k:move /:filter q:quit"
func (a App) renderHints(hints []Hint) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, " ")
}
