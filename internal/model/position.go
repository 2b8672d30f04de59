package model

import (
	"fmt"
	"sort"

	"github.com/nikbrunner/lister/internal/surface"
)

// PositionKind tags the variant held by a Position.
type PositionKind int

const (
	PosUnset PositionKind = iota
	PosAnchor
	PosIndex
	PosSymbol
)

// Symbol names a position relative to the list or the focus.
type Symbol int

const (
	SymFirst Symbol = iota // first visible item
	SymLast                // last visible item
	SymPoint               // focused item
)

// Position addresses an item by anchor, by visible index or by symbol.
// The zero Position is unset; operations taking a range treat it as the
// list boundary, insertions as "append".
type Position struct {
	Kind   PositionKind
	Anchor surface.Anchor
	Index  int
	Symbol Symbol
}

var (
	FirstItem = Position{Kind: PosSymbol, Symbol: SymFirst}
	LastItem  = Position{Kind: PosSymbol, Symbol: SymLast}
	Point     = Position{Kind: PosSymbol, Symbol: SymPoint}
)

// AtAnchor returns the position of the item owning a.
func AtAnchor(a surface.Anchor) Position {
	return Position{Kind: PosAnchor, Anchor: a}
}

// AtIndex returns the position of the i-th visible item.
func AtIndex(i int) Position {
	return Position{Kind: PosIndex, Index: i}
}

// IsSet reports whether p holds a variant.
func (p Position) IsSet() bool {
	return p.Kind != PosUnset
}

func (p Position) String() string {
	switch p.Kind {
	case PosAnchor:
		return fmt.Sprintf("anchor %s", string(p.Anchor))
	case PosIndex:
		return fmt.Sprintf("index %d", p.Index)
	case PosSymbol:
		switch p.Symbol {
		case SymFirst:
			return ":first"
		case SymLast:
			return ":last"
		case SymPoint:
			return ":point"
		}
	}
	return "unset"
}

// resolve normalizes p to an item and its index among all items.
func (s *Store) resolve(p Position) (int, *Item, error) {
	switch p.Kind {
	case PosAnchor:
		item, ok := s.byAnchor[p.Anchor]
		if !ok {
			return -1, nil, PositionError{Pos: p}
		}
		return s.indexOfItem(item), item, nil

	case PosIndex:
		visible := s.VisibleItems()
		if p.Index < 0 || p.Index >= len(visible) {
			return -1, nil, RangeError{Index: p.Index, Len: len(visible)}
		}
		item := visible[p.Index]
		return s.indexOfItem(item), item, nil

	case PosSymbol:
		var item *Item
		switch p.Symbol {
		case SymFirst:
			item = s.firstVisible()
		case SymLast:
			item = s.lastVisible()
		case SymPoint:
			item = s.byAnchor[s.focus]
		}
		if item == nil {
			return -1, nil, PositionError{Pos: p}
		}
		return s.indexOfItem(item), item, nil
	}
	return -1, nil, PositionError{Pos: p}
}

// indexOfItem finds item among all items by binary search over anchors.
func (s *Store) indexOfItem(item *Item) int {
	i := s.insertionIndex(item.Anchor)
	if i < len(s.items) && s.items[i] == item {
		return i
	}
	return -1
}

// insertionIndex returns the first index whose anchor does not sort before a.
func (s *Store) insertionIndex(a surface.Anchor) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.surface.Compare(s.items[i].Anchor, a) >= 0
	})
}

func (s *Store) firstVisible() *Item {
	for _, it := range s.items {
		if it.Visible {
			return it
		}
	}
	return nil
}

func (s *Store) lastVisible() *Item {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Visible {
			return s.items[i]
		}
	}
	return nil
}

// resolveRange resolves first and last to an inclusive index range over all
// items. Unset bounds default to the list boundaries; reversed bounds are
// swapped. An empty list yields hi < lo.
func (s *Store) resolveRange(first, last Position) (int, int, error) {
	lo, hi := 0, len(s.items)-1
	if first.IsSet() {
		i, _, err := s.resolve(first)
		if err != nil {
			return 0, -1, err
		}
		lo = i
	}
	if last.IsSet() {
		i, _, err := s.resolve(last)
		if err != nil {
			return 0, -1, err
		}
		hi = i
	}
	if first.IsSet() && last.IsSet() && hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, nil
}
