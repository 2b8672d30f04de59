package search

import (
	"strings"

	"github.com/nikbrunner/lister/internal/model"
)

// Less orders data by its text, case-insensitively. Ties keep their order.
func Less(text Text, descending bool) model.Less {
	if text == nil {
		text = DefaultText
	}
	return func(a, b any) bool {
		x, y := strings.ToLower(text(a)), strings.ToLower(text(b))
		if descending {
			return x > y
		}
		return x < y
	}
}
