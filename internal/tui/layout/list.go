package layout

// CalculateListHeight computes the number of lines available for the list.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	return max(terminalHeight-cfg.HeightReduction, cfg.MinHeight)
}

// CalculateLineWidth computes the width available for a rendered line.
func CalculateLineWidth(terminalWidth int, cfg ListConfig) int {
	return max(terminalWidth-cfg.ContentPadding, 1)
}

// CalculateViewportOffset returns the first line to show so that the
// selected line sits near the middle of a viewport of the given height.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}
	return min(max(selected-viewportHeight/2, 0), total-viewportHeight)
}

// CalculateVisibleListItems returns the window [start, end) of a list that
// keeps the selected index on screen, scrolling only once it passes the
// bottom.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}
	start = max(selectedIdx-maxVisible+1, 0)
	return start, min(start+maxVisible, totalItems)
}
