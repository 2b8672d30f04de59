package model

import (
	"github.com/nikbrunner/lister/internal/surface"
	"github.com/nikbrunner/lister/internal/tree"
)

// Less orders item data.
type Less func(a, b any) bool

// ReorderRange rewrites the items from first to last (unset bounds mean
// the list boundaries) through transform. The range is viewed as a tree
// rooted at its shallowest level: transform is applied to the top-level
// siblings and to every nested sibling list. Leading items that sit in
// the sublist of an item before the range form a list of their own and
// keep their level. Marks travel with their items; anchors do not
// survive, the new ones are returned.
//
// The range is resolved after leave handlers have run.
func (s *Store) ReorderRange(transform tree.Transform[Item], first, last Position) ([]surface.Anchor, error) {
	if _, _, err := s.resolveRange(first, last); err != nil {
		return nil, err
	}

	var anchors []surface.Anchor
	lo, hi := 0, -1
	err := s.Locked(func() error {
		var err error
		if lo, hi, err = s.resolveRange(first, last); err != nil || hi < lo {
			return err
		}
		entries := s.snapshot(lo, hi)
		flat := tree.Unwrap(tree.Reorder(tree.Wrap(entries), transform), tree.MinLevel(entries))
		anchors, err = s.rewrite(lo, hi, flat)
		return err
	})
	s.logger.Debug("reordered range", "from", lo, "to", hi, "items", len(anchors))
	return anchors, err
}

// snapshot copies the items lo..hi as flat entries.
func (s *Store) snapshot(lo, hi int) []tree.Entry[Item] {
	entries := make([]tree.Entry[Item], 0, hi-lo+1)
	for _, it := range s.items[lo : hi+1] {
		entries = append(entries, tree.Entry[Item]{Value: *it, Level: it.Level})
	}
	return entries
}

// rewrite replaces the items lo..hi with flat.
func (s *Store) rewrite(lo, hi int, flat []tree.Entry[Item]) ([]surface.Anchor, error) {
	before := s.blockAfter(hi)
	for i := hi; i >= lo; i-- {
		if err := s.removeAt(i); err != nil {
			return nil, err
		}
	}

	anchors := make([]surface.Anchor, 0, len(flat))
	for _, e := range flat {
		item, err := s.insertItem(before, e.Value.Data, e.Level, true)
		if err != nil {
			return anchors, err
		}
		if e.Value.Marked {
			s.markItem(item, true)
		}
		anchors = append(anchors, item.Anchor)
	}
	s.normalizeLevels(lo + len(anchors))
	return anchors, nil
}

// SortRange sorts the items from first to last, and every sublist within
// them, by less. Sublists move with their parent.
func (s *Store) SortRange(less Less, first, last Position) ([]surface.Anchor, error) {
	return s.ReorderRange(sortByData(less), first, last)
}

// SortThisLevel sorts the sublist around pos.
func (s *Store) SortThisLevel(pos Position, less Less) ([]surface.Anchor, error) {
	first, last, _, _, err := s.SublistBoundaries(pos)
	if err != nil {
		return nil, err
	}
	return s.SortRange(less, AtAnchor(first), AtAnchor(last))
}

// SortDWIM sorts the sublist of the focused item, or the whole list when
// nothing is focused.
func (s *Store) SortDWIM(less Less) ([]surface.Anchor, error) {
	if _, ok := s.FocusedItem(); ok {
		return s.SortThisLevel(Point, less)
	}
	return s.SortRange(less, Position{}, Position{})
}

func sortByData(less Less) tree.Transform[Item] {
	return tree.SortBy(func(a, b Item) bool {
		return less(a.Data, b.Data)
	})
}

// MoveUp swaps the item at pos, with its descendants, and its previous
// sibling. The focus follows the item when it had it.
func (s *Store) MoveUp(pos Position) (surface.Anchor, error) {
	return s.move(pos, true)
}

// MoveDown swaps the item at pos, with its descendants, and its next
// sibling.
func (s *Store) MoveDown(pos Position) (surface.Anchor, error) {
	return s.move(pos, false)
}

func (s *Store) move(pos Position, up bool) (surface.Anchor, error) {
	_, item, err := s.resolve(pos)
	if err != nil {
		return surface.NoAnchor, err
	}
	if _, _, _, err := s.siblingRuns(item, up); err != nil {
		return surface.NoAnchor, err
	}

	var result surface.Anchor
	err = s.Locked(func() error {
		lo, mid, hi, err := s.siblingRuns(item, up)
		if err != nil {
			return err
		}
		moved := s.indexOfItem(item)
		focused := s.focus == item.Anchor
		anchors, err := s.swap(lo, mid, hi)
		if err != nil {
			return err
		}
		offset := moved - mid
		if moved < mid {
			offset = hi - mid + 1
		}
		result = anchors[offset]
		if focused {
			s.follow = result
		}
		return nil
	})
	return result, err
}

// siblingRuns finds the adjacent runs lo..mid-1 and mid..hi formed by item
// and its previous (up) or next sibling, each with its descendants.
func (s *Store) siblingRuns(item *Item, up bool) (lo, mid, hi int, err error) {
	i := s.indexOfItem(item)
	if i < 0 {
		return 0, 0, 0, PositionError{Pos: AtAnchor(item.Anchor)}
	}
	if up {
		j := i - 1
		for j >= 0 && s.items[j].Level > item.Level {
			j--
		}
		if j < 0 || s.items[j].Level < item.Level {
			return 0, 0, 0, StructureError{Op: "move up", Anchor: item.Anchor, Reason: "no previous sibling"}
		}
		return j, i, s.descendants(i), nil
	}
	j := s.descendants(i) + 1
	if j >= len(s.items) || s.items[j].Level != item.Level {
		return 0, 0, 0, StructureError{Op: "move down", Anchor: item.Anchor, Reason: "no next sibling"}
	}
	return i, j, s.descendants(j), nil
}

// swap exchanges the adjacent runs lo..mid-1 and mid..hi.
func (s *Store) swap(lo, mid, hi int) ([]surface.Anchor, error) {
	flat := append(s.snapshot(mid, hi), s.snapshot(lo, mid-1)...)
	return s.rewrite(lo, hi, flat)
}
