package search

import (
	"fmt"

	"github.com/nikbrunner/lister/internal/model"
	"github.com/sahilm/fuzzy"
)

// Text extracts the searchable text of item data.
type Text func(data any) string

// DefaultText formats data with fmt.Sprint.
func DefaultText(data any) string {
	return fmt.Sprint(data)
}

// Result represents a fuzzy search match.
type Result struct {
	Item           *model.Item
	Text           string
	MatchedIndexes []int
	Score          int
}

// itemTexts implements fuzzy.Source for a slice of items.
type itemTexts struct {
	items []*model.Item
	text  Text
}

func (it itemTexts) String(i int) string {
	return it.text(it.items[i].Data)
}

func (it itemTexts) Len() int {
	return len(it.items)
}

// FuzzyItems searches all items of the store, hidden ones included, using
// fuzzy matching. Returns results sorted by match score (best first).
func FuzzyItems(store *model.Store, query string, text Text) []Result {
	if query == "" {
		return nil
	}
	if text == nil {
		text = DefaultText
	}

	source := itemTexts{items: store.Items(), text: text}
	matches := fuzzy.FindFrom(query, source)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Item:           source.items[m.Index],
			Text:           m.Str,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// FuzzyPredicate returns a filter predicate keeping data whose text fuzzy
// matches query. An empty query yields nil, which clears a filter.
func FuzzyPredicate(query string, text Text) model.Predicate {
	if query == "" {
		return nil
	}
	if text == nil {
		text = DefaultText
	}
	return func(data any) bool {
		return len(fuzzy.Find(query, []string{text(data)})) > 0
	}
}
