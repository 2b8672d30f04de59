package layout

import "github.com/charmbracelet/x/ansi"

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleLength returns the width of a string in terminal cells,
// excluding ANSI codes.
func VisibleLength(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates styled or plain text to maxWidth cells with an
// ellipsis, keeping escape sequences intact.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}
	if maxWidth <= ansi.StringWidth(cfg.Ellipsis) {
		// Not enough room for any text, just return truncated ellipsis
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}
