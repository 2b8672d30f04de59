package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by Render.
type Styles struct {
	Item    lipgloss.Style
	Focused lipgloss.Style
	Marked  lipgloss.Style
	Static  lipgloss.Style // header and footer
}

// DefaultStyles returns the default styles: grayscale with a teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}

	return Styles{
		Item: lipgloss.NewStyle().
			Foreground(primary),
		Focused: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),
		Marked: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Static: lipgloss.NewStyle().
			Foreground(subtle),
	}
}

// RenderOptions controls how Render lays out blocks.
type RenderOptions struct {
	IndentWidth int    // spaces per level
	FocusGlyph  string // gutter on the first line of the focused block
	MarkGlyph   string // gutter on the first line of highlighted blocks
	Styles      Styles
}

// DefaultRenderOptions returns the default render options.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		IndentWidth: 2,
		FocusGlyph:  ">",
		MarkGlyph:   "*",
		Styles:      DefaultStyles(),
	}
}

// Render returns the visible blocks as text, one line per block line.
// Item blocks get a focus column, a mark column and indentation by their
// level meta; static blocks are rendered as is.
func (b *Buffer) Render(opts RenderOptions) string {
	focusBlank := strings.Repeat(" ", lipgloss.Width(opts.FocusGlyph))
	markBlank := strings.Repeat(" ", lipgloss.Width(opts.MarkGlyph))

	var out strings.Builder
	for _, blk := range b.blocks {
		if blk.hidden {
			continue
		}
		if static, _ := blk.meta[MetaStatic].(bool); static {
			for _, line := range blk.lines {
				out.WriteString(opts.Styles.Static.Render(line))
				out.WriteByte('\n')
			}
			continue
		}

		level, _ := blk.meta[MetaLevel].(int)
		indent := strings.Repeat(" ", level*opts.IndentWidth)
		focused := blk.anchor == b.focus

		style := opts.Styles.Item
		switch {
		case focused:
			style = opts.Styles.Focused
		case blk.highlighted:
			style = opts.Styles.Marked
		}

		for i, line := range blk.lines {
			focusCol, markCol := focusBlank, markBlank
			if i == 0 && focused {
				focusCol = opts.FocusGlyph
			}
			if i == 0 && blk.highlighted {
				markCol = opts.MarkGlyph
			}
			out.WriteString(focusCol)
			out.WriteString(markCol)
			out.WriteString(style.Render(indent + line))
			out.WriteByte('\n')
		}
	}
	return out.String()
}
