package model

import (
	"reflect"

	"github.com/nikbrunner/lister/internal/surface"
	"github.com/nikbrunner/lister/internal/tree"
)

// flattenSequence turns a nested slice into (data, level) entries. An
// element that is itself a slice or array is the sublist of the element
// before it. Byte slices and strings are data, not sequences.
func flattenSequence(seq any, level int, out []tree.Entry[any]) ([]tree.Entry[any], error) {
	v := reflect.ValueOf(seq)
	if !isSequence(v) {
		return out, SequenceTypeError{Value: seq}
	}
	for i := 0; i < v.Len(); i++ {
		e := v.Index(i)
		for e.Kind() == reflect.Interface && !e.IsNil() {
			e = e.Elem()
		}
		if isSequence(e) {
			var err error
			if out, err = flattenSequence(e.Interface(), level+1, out); err != nil {
				return out, err
			}
			continue
		}
		out = append(out, tree.Entry[any]{Value: e.Interface(), Level: level})
	}
	return out, nil
}

func isSequence(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Slice:
		return v.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

// InsertSequence inserts a nested sequence before the item at pos, or at
// the end for an unset pos. Nesting becomes indentation; the top level of
// the sequence takes the level of the predecessor.
func (s *Store) InsertSequence(pos Position, seq any) ([]surface.Anchor, error) {
	return s.insertSequence(pos, seq, 0, false)
}

// InsertSequenceLevel is InsertSequence with a requested level for the top
// level of the sequence.
func (s *Store) InsertSequenceLevel(pos Position, seq any, level int) ([]surface.Anchor, error) {
	return s.insertSequence(pos, seq, level, true)
}

// AddSequence appends a nested sequence at the end of the list.
func (s *Store) AddSequence(seq any) ([]surface.Anchor, error) {
	return s.insertSequence(Position{}, seq, 0, false)
}

func (s *Store) insertSequence(pos Position, seq any, level int, requested bool) ([]surface.Anchor, error) {
	entries, err := flattenSequence(seq, 0, nil)
	if err != nil {
		return nil, err
	}
	before, idx, err := s.insertPoint(pos)
	if err != nil {
		return nil, err
	}
	base := s.determineLevel(idx, level, requested)

	items, err := s.insertEntries(before, base, entries)
	anchors := anchorsOf(items)
	if err != nil {
		return anchors, err
	}
	if len(items) > 0 {
		s.normalizeLevels(s.indexOfItem(items[len(items)-1]) + 1)
	}
	for _, it := range items {
		if it.Visible {
			s.takeCursorLine(before, it)
			break
		}
	}
	return anchors, nil
}

// insertEntries inserts entries before the given block, shifted by base.
func (s *Store) insertEntries(before surface.Anchor, base int, entries []tree.Entry[any]) ([]*Item, error) {
	items := make([]*Item, 0, len(entries))
	for _, e := range entries {
		item, err := s.insertItem(before, e.Value, base+e.Level, true)
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

func anchorsOf(items []*Item) []surface.Anchor {
	anchors := make([]surface.Anchor, len(items))
	for i, it := range items {
		anchors[i] = it.Anchor
	}
	return anchors
}

// ReplaceRange replaces the items from first to last with a nested
// sequence at the level of the first replaced item. On an empty list the
// sequence is appended.
func (s *Store) ReplaceRange(first, last Position, seq any) ([]surface.Anchor, error) {
	entries, err := flattenSequence(seq, 0, nil)
	if err != nil {
		return nil, err
	}
	lo, hi, err := s.resolveRange(first, last)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return s.AddSequence(seq)
	}

	affected := append([]*Item(nil), s.items[lo:hi+1]...)
	var anchors []surface.Anchor
	err = s.guardFocus(affected, func() error {
		lo, hi, err := s.resolveRange(first, last)
		if err != nil || hi < lo {
			return err
		}
		base := s.items[lo].Level
		before := s.blockAfter(hi)
		for i := hi; i >= lo; i-- {
			if err := s.removeAt(i); err != nil {
				return err
			}
		}
		items, err := s.insertEntries(before, base, entries)
		anchors = anchorsOf(items)
		s.normalizeLevels(lo + len(items))
		return err
	})
	return anchors, err
}

// SetList replaces all items with seq. Header and footer stay.
func (s *Store) SetList(seq any) ([]surface.Anchor, error) {
	return s.ReplaceRange(Position{}, Position{}, seq)
}
