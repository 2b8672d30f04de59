package model

// SetMarkPredicate sets the predicate gating Mark. nil allows every item.
// Existing marks are left alone.
func (s *Store) SetMarkPredicate(pred Predicate) {
	s.markPredicate = pred
}

// CanMark reports whether item may change its mark.
func (s *Store) CanMark(item *Item) bool {
	return s.markPredicate == nil || s.markPredicate(item.Data)
}

// markItem sets the mark of item if allowed and reports whether it did.
func (s *Store) markItem(item *Item, value bool) bool {
	if !s.CanMark(item) {
		return false
	}
	item.Marked = value
	s.surface.Highlight(item.Anchor, value)
	return true
}

// Mark sets the mark of the item at pos. It reports false when the mark
// predicate rejects the item.
func (s *Store) Mark(pos Position, value bool) (bool, error) {
	_, item, err := s.resolve(pos)
	if err != nil {
		return false, err
	}
	return s.markItem(item, value), nil
}

// MarkAll sets the mark of every item and returns how many were set.
func (s *Store) MarkAll(value bool) int {
	return s.markEach(s.items, value)
}

// MarkVisible sets the mark of every visible item.
func (s *Store) MarkVisible(value bool) int {
	return s.markEach(s.VisibleItems(), value)
}

// MarkSome sets the mark of the items at positions. Positions that do not
// resolve are skipped like un-markable items.
func (s *Store) MarkSome(positions []Position, value bool) int {
	n := 0
	for _, pos := range positions {
		_, item, err := s.resolve(pos)
		if err != nil {
			continue
		}
		if s.markItem(item, value) {
			n++
		}
	}
	return n
}

// MarkSublist sets the mark of every item in the sublist around pos.
func (s *Store) MarkSublist(pos Position, value bool) (int, error) {
	i, _, err := s.resolve(pos)
	if err != nil {
		return 0, err
	}
	lo, hi := s.sublist(i)
	return s.markEach(s.items[lo:hi+1], value), nil
}

func (s *Store) markEach(items []*Item, value bool) int {
	n := 0
	for _, it := range items {
		if s.markItem(it, value) {
			n++
		}
	}
	return n
}

// MarkedItems returns the marked items in order.
func (s *Store) MarkedItems() []*Item {
	var out []*Item
	for _, it := range s.items {
		if it.Marked {
			out = append(out, it)
		}
	}
	return out
}

// MarkedData returns the data of the marked items.
func (s *Store) MarkedData() []any {
	var out []any
	for _, it := range s.items {
		if it.Marked {
			out = append(out, it.Data)
		}
	}
	return out
}
