package model

// SetFilter replaces the filter predicate and re-evaluates the visibility
// of every item. A nil predicate shows everything. Setting nil while no
// filter is active does nothing.
func (s *Store) SetFilter(pred Predicate) error {
	if pred == nil && s.filter == nil {
		return nil
	}
	return s.Locked(func() error {
		s.filter = pred
		hidden := 0
		for _, it := range s.items {
			visible := pred == nil || pred(it.Data)
			if visible != it.Visible {
				it.Visible = visible
				s.surface.SetVisibility(it.Anchor, visible)
			}
			if !visible {
				hidden++
			}
		}
		s.logger.Debug("filter applied", "items", len(s.items), "hidden", hidden)
		return nil
	})
}

// Filtered reports whether a filter predicate is active.
func (s *Store) Filtered() bool {
	return s.filter != nil
}

// VisibleItems returns the items that pass the filter.
func (s *Store) VisibleItems() []*Item {
	var out []*Item
	for _, it := range s.items {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}

// HiddenItems returns the items the filter rejects.
func (s *Store) HiddenItems() []*Item {
	var out []*Item
	for _, it := range s.items {
		if !it.Visible {
			out = append(out, it)
		}
	}
	return out
}
