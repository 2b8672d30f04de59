package model

import (
	"github.com/nikbrunner/lister/internal/tree"
)

// WalkAll calls fn for every item whose data satisfies pred, or for every
// item when pred is nil. It returns the number of calls. fn may mutate the
// store; the walk covers the items present when it started.
func (s *Store) WalkAll(fn func(*Item), pred Predicate) int {
	n := 0
	for _, it := range s.Items() {
		if _, alive := s.byAnchor[it.Anchor]; !alive {
			continue
		}
		if pred != nil && !pred(it.Data) {
			continue
		}
		fn(it)
		n++
	}
	return n
}

// WalkSome calls fn for the items at positions, in the given order. All
// positions are resolved before fn is called.
func (s *Store) WalkSome(positions []Position, fn func(*Item)) (int, error) {
	items := make([]*Item, 0, len(positions))
	for _, pos := range positions {
		_, item, err := s.resolve(pos)
		if err != nil {
			return 0, err
		}
		items = append(items, item)
	}
	for _, it := range items {
		fn(it)
	}
	return len(items), nil
}

// WalkMarked calls fn for every marked item.
func (s *Store) WalkMarked(fn func(*Item)) int {
	items := s.MarkedItems()
	for _, it := range items {
		fn(it)
	}
	return len(items)
}

// GetData returns the data of the item at pos.
func (s *Store) GetData(pos Position) (any, bool) {
	_, item, err := s.resolve(pos)
	if err != nil {
		return nil, false
	}
	return item.Data, true
}

// GetAllData returns the data of the items from first to last, hidden
// ones included. Unset bounds mean the list boundaries.
func (s *Store) GetAllData(first, last Position) ([]any, error) {
	lo, hi, err := s.resolveRange(first, last)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, max(hi-lo+1, 0))
	for i := lo; i <= hi; i++ {
		out = append(out, s.items[i].Data)
	}
	return out, nil
}

// GetAllDataTree is GetAllData with nesting: the children of an item
// follow it as a nested []any, relative to the shallowest item in the
// range. The result can be fed back to AddSequence.
func (s *Store) GetAllDataTree(first, last Position) ([]any, error) {
	lo, hi, err := s.resolveRange(first, last)
	if err != nil {
		return nil, err
	}
	entries := make([]tree.Entry[any], 0, max(hi-lo+1, 0))
	for i := lo; i <= hi; i++ {
		entries = append(entries, tree.Entry[any]{Value: s.items[i].Data, Level: s.items[i].Level})
	}
	return tree.Nest(tree.Wrap(entries)), nil
}
