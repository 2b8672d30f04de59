package tui

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/lister/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	listHeight := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	lineWidth := layout.CalculateLineWidth(a.width, a.layoutConfig.List)

	lines := []string{""} // top padding
	lines = append(lines, a.renderList(listHeight, lineWidth)...)
	lines = append(lines, a.renderStatusLine(), a.renderHints(a.contextualHints()))

	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// renderList renders the buffer scrolled so the focused line stays visible.
func (a App) renderList(height, width int) []string {
	var lines []string
	if out := strings.TrimSuffix(a.buffer.Render(a.render), "\n"); out != "" {
		lines = strings.Split(out, "\n")
	}

	if a.store.VisibleLen() == 0 {
		empty := "No items"
		if a.store.Filtered() {
			empty = "No matches"
		}
		lines = append(lines, a.styles.Empty.Render(empty))
	}

	offset := layout.CalculateViewportOffset(a.focusLine(), len(lines), height)
	end := min(offset+height, len(lines))
	visible := lines[offset:end]

	for i, line := range visible {
		visible[i], _ = layout.TruncateText(line, width, a.layoutConfig.Text)
	}
	return visible
}

// focusLine returns the rendered line of the focused block, 0 if none.
func (a App) focusLine() int {
	focus, ok := a.buffer.FocusPosition()
	if !ok {
		return 0
	}
	line := 0
	for _, anchor := range a.buffer.Anchors() {
		if !a.buffer.Visible(anchor) {
			continue
		}
		if anchor == focus {
			return line
		}
		line += a.buffer.BlockLength(anchor)
	}
	return 0
}

// renderStatusLine renders the message, or the filter input while
// filtering, or the list counters.
func (a App) renderStatusLine() string {
	if a.mode == ModeFilter {
		return a.filterInput.View()
	}

	if a.messageText != "" {
		switch a.messageType {
		case MessageError:
			return a.styles.Error.Render("✗ " + a.messageText)
		case MessageSuccess:
			return a.styles.Success.Render("✓ " + a.messageText)
		default:
			return a.styles.Info.Render(a.messageText)
		}
	}

	var status strings.Builder
	fmt.Fprintf(&status, "%d/%d items", a.store.VisibleLen(), a.store.Len())
	if n := len(a.store.MarkedItems()); n > 0 {
		fmt.Fprintf(&status, "  %d marked", n)
	}
	if a.filterQuery != "" {
		fmt.Fprintf(&status, "  [filter:%s]", a.filterQuery)
	}
	fmt.Fprintf(&status, "  [ord:%s]", a.sortMode)
	return a.styles.Status.Render(status.String())
}
