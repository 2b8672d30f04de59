// Package model maintains an ordered, indented list of items rendered into a
// surface.Surface: insertion and removal by anchor, index or symbol, level
// inference, tree-preserving reordering, filtering, marks and a focus with
// enter/leave notifications.
package model

import (
	"errors"
	"log/slog"

	"github.com/nikbrunner/lister/internal/surface"
)

// Item is one entry of the list. Items returned by the store must be
// treated as read-only.
type Item struct {
	Anchor      surface.Anchor
	Level       int
	Data        any
	BlockLength int
	Marked      bool
	Visible     bool
}

// Mapper renders item data into the lines of its block.
type Mapper func(data any) []string

// Predicate decides something about item data. A nil Predicate means none.
type Predicate func(data any) bool

// Handler is called with the anchor entered or left by the focus.
type Handler func(s *Store, a surface.Anchor)

// Store is the item list of one surface. Items are kept sorted by anchor
// order, and every item is indented at most one level deeper than its
// predecessor.
//
// A Store is meant to be driven from a single goroutine (a UI loop); it
// does no locking of its own.
type Store struct {
	surface surface.Surface
	mapper  Mapper
	logger  *slog.Logger

	items    []*Item
	byAnchor map[surface.Anchor]*Item
	header   surface.Anchor
	footer   surface.Anchor

	filter        Predicate
	markPredicate Predicate

	focus       surface.Anchor
	follow      surface.Anchor // focus target requested from inside Locked
	enter       []Handler
	leave       []Handler
	dispatching bool
	suppress    int
	locked      bool
}

// StoreParams holds parameters for creating a new Store.
type StoreParams struct {
	Surface surface.Surface
	Mapper  Mapper
	Data    any      // optional initial sequence, see AddSequence
	Header  []string // optional
	Footer  []string // optional
	Logger  *slog.Logger
}

// New creates a Store drawing into params.Surface.
func New(params StoreParams) (*Store, error) {
	if params.Surface == nil {
		return nil, errors.New("model: Surface is required")
	}
	if params.Mapper == nil {
		return nil, errors.New("model: Mapper is required")
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		surface:  params.Surface,
		mapper:   params.Mapper,
		logger:   logger,
		byAnchor: make(map[surface.Anchor]*Item),
	}
	if params.Header != nil {
		if err := s.SetHeader(params.Header); err != nil {
			return nil, err
		}
	}
	if params.Footer != nil {
		if err := s.SetFooter(params.Footer); err != nil {
			return nil, err
		}
	}
	if params.Data != nil {
		if _, err := s.AddSequence(params.Data); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close removes every block the store owns and drops all handlers.
func (s *Store) Close() error {
	s.enter, s.leave = nil, nil
	s.focus = surface.NoAnchor
	var errs []error
	for _, it := range s.items {
		errs = append(errs, s.surface.RemoveBlock(it.Anchor))
	}
	s.items = nil
	s.byAnchor = make(map[surface.Anchor]*Item)
	errs = append(errs, s.SetHeader(nil), s.SetFooter(nil))
	return errors.Join(errs...)
}

// SetHeader replaces the header block; nil lines remove it.
func (s *Store) SetHeader(lines []string) error {
	if s.header != surface.NoAnchor {
		if err := s.surface.RemoveBlock(s.header); err != nil {
			return err
		}
		s.header = surface.NoAnchor
	}
	if lines == nil {
		return nil
	}
	before, _ := s.surface.First()
	a, err := s.surface.InsertBlock(before, lines)
	if err != nil {
		return err
	}
	s.surface.SetMeta(a, surface.MetaStatic, true)
	s.header = a
	return nil
}

// SetFooter replaces the footer block; nil lines remove it.
func (s *Store) SetFooter(lines []string) error {
	if s.footer != surface.NoAnchor {
		if err := s.surface.RemoveBlock(s.footer); err != nil {
			return err
		}
		s.footer = surface.NoAnchor
	}
	if lines == nil {
		return nil
	}
	a, err := s.surface.InsertBlock(surface.NoAnchor, lines)
	if err != nil {
		return err
	}
	s.surface.SetMeta(a, surface.MetaStatic, true)
	s.footer = a
	return nil
}

// nextFreeAppendPosition returns the insertion point for "add to end":
// after the last item, else before the footer, else after the header,
// else the start of the body.
func (s *Store) nextFreeAppendPosition() surface.Anchor {
	if n := len(s.items); n > 0 {
		next, _ := s.surface.Next(s.items[n-1].Anchor)
		return next
	}
	if s.footer != surface.NoAnchor {
		return s.footer
	}
	if s.header != surface.NoAnchor {
		next, _ := s.surface.Next(s.header)
		return next
	}
	first, _ := s.surface.First()
	return first
}

// insertPoint returns the block to insert before and the item index the
// new item will take.
func (s *Store) insertPoint(pos Position) (surface.Anchor, int, error) {
	if !pos.IsSet() {
		return s.nextFreeAppendPosition(), len(s.items), nil
	}
	idx, item, err := s.resolve(pos)
	if err != nil {
		return surface.NoAnchor, -1, err
	}
	return item.Anchor, idx, nil
}

// blockAfter returns the block following the item at index i.
func (s *Store) blockAfter(i int) surface.Anchor {
	next, _ := s.surface.Next(s.items[i].Anchor)
	return next
}

// Insert adds data before the item at pos (or at the end for an unset pos),
// inheriting the level of its predecessor.
func (s *Store) Insert(pos Position, data any) (surface.Anchor, error) {
	return s.insert(pos, data, 0, false)
}

// InsertLevel is Insert with a requested level. The level is clamped to at
// most one deeper than the predecessor.
func (s *Store) InsertLevel(pos Position, data any, level int) (surface.Anchor, error) {
	return s.insert(pos, data, level, true)
}

// Add appends data at the end of the list.
func (s *Store) Add(data any) (surface.Anchor, error) {
	return s.insert(Position{}, data, 0, false)
}

// AddLevel appends data at the end of the list with a requested level.
func (s *Store) AddLevel(data any, level int) (surface.Anchor, error) {
	return s.insert(Position{}, data, level, true)
}

func (s *Store) insert(pos Position, data any, level int, requested bool) (surface.Anchor, error) {
	before, _, err := s.insertPoint(pos)
	if err != nil {
		return surface.NoAnchor, err
	}
	item, err := s.insertItem(before, data, level, requested)
	if err != nil {
		return surface.NoAnchor, err
	}
	s.normalizeLevels(s.indexOfItem(item) + 1)
	s.takeCursorLine(before, item)
	return item.Anchor, nil
}

// insertItem renders data into a new block before the given block and
// records the item.
func (s *Store) insertItem(before surface.Anchor, data any, level int, requested bool) (*Item, error) {
	a, err := s.surface.InsertBlock(before, s.mapper(data))
	if err != nil {
		return nil, err
	}

	idx := s.insertionIndex(a)
	lvl := s.determineLevel(idx, level, requested)

	item := &Item{
		Anchor:      a,
		Level:       lvl,
		Data:        data,
		BlockLength: s.surface.BlockLength(a),
		Visible:     s.filter == nil || s.filter(data),
	}
	s.surface.SetMeta(a, surface.MetaLevel, lvl)
	s.surface.SetMeta(a, surface.MetaData, data)
	if !item.Visible {
		s.surface.SetVisibility(a, false)
	}

	s.items = append(s.items, nil)
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = item
	s.byAnchor[a] = item

	s.logger.Debug("inserted item", "anchor", string(a), "index", idx, "level", lvl, "visible", item.Visible)
	return item, nil
}

// takeCursorLine moves the focus onto item when it was inserted right
// before the focused item: the cursor keeps its line.
func (s *Store) takeCursorLine(before surface.Anchor, item *Item) {
	if item == nil || !item.Visible || s.focus == surface.NoAnchor || before != s.focus {
		return
	}
	if s.locked {
		s.follow = item.Anchor
	}
	s.moveFocus(item.Anchor)
}

// Remove deletes the item at pos and releases its anchor.
func (s *Store) Remove(pos Position) error {
	_, item, err := s.resolve(pos)
	if err != nil {
		return err
	}
	return s.guardFocus([]*Item{item}, func() error {
		idx := s.indexOfItem(item)
		if idx < 0 {
			return PositionError{Pos: AtAnchor(item.Anchor)}
		}
		if err := s.removeAt(idx); err != nil {
			return err
		}
		s.normalizeLevels(idx)
		return nil
	})
}

// RemoveRange deletes the items from first to last inclusive.
func (s *Store) RemoveRange(first, last Position) error {
	lo, hi, err := s.resolveRange(first, last)
	if err != nil || hi < lo {
		return err
	}
	affected := append([]*Item(nil), s.items[lo:hi+1]...)
	return s.guardFocus(affected, func() error {
		lo, hi, err := s.resolveRange(first, last)
		if err != nil || hi < lo {
			return err
		}
		for i := hi; i >= lo; i-- {
			if err := s.removeAt(i); err != nil {
				return err
			}
		}
		s.normalizeLevels(lo)
		return nil
	})
}

// guardFocus runs body inside a locked transaction when it touches the
// focused item, so leave fires first and focus is re-established after.
func (s *Store) guardFocus(items []*Item, body func() error) error {
	if s.locked || s.focus == surface.NoAnchor {
		return body()
	}
	for _, it := range items {
		if it.Anchor == s.focus {
			return s.Locked(body)
		}
	}
	return body()
}

// removeAt deletes the item at index i without touching other levels.
func (s *Store) removeAt(i int) error {
	item := s.items[i]
	if err := s.surface.RemoveBlock(item.Anchor); err != nil {
		return err
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.byAnchor, item.Anchor)
	if s.focus == item.Anchor {
		s.focus = surface.NoAnchor
	}
	s.logger.Debug("removed item", "anchor", string(item.Anchor), "index", i)
	return nil
}

// Replace re-renders the item at pos with new data. Level and mark are
// kept; the item gets a new anchor.
func (s *Store) Replace(pos Position, data any) (surface.Anchor, error) {
	_, item, err := s.resolve(pos)
	if err != nil {
		return surface.NoAnchor, err
	}
	var anchor surface.Anchor
	err = s.guardFocus([]*Item{item}, func() error {
		idx := s.indexOfItem(item)
		if idx < 0 {
			return PositionError{Pos: AtAnchor(item.Anchor)}
		}
		before := s.blockAfter(idx)
		if err := s.removeAt(idx); err != nil {
			return err
		}
		replacement, err := s.insertItem(before, data, item.Level, true)
		if err != nil {
			return err
		}
		if item.Marked {
			s.markItem(replacement, true)
		}
		anchor = replacement.Anchor
		return nil
	})
	return anchor, err
}

// Len returns the number of items, hidden ones included.
func (s *Store) Len() int {
	return len(s.items)
}

// VisibleLen returns the number of visible items.
func (s *Store) VisibleLen() int {
	n := 0
	for _, it := range s.items {
		if it.Visible {
			n++
		}
	}
	return n
}

// Item returns the item owning a.
func (s *Store) Item(a surface.Anchor) (*Item, bool) {
	item, ok := s.byAnchor[a]
	return item, ok
}

// Items returns all items in order, hidden ones included.
func (s *Store) Items() []*Item {
	return append([]*Item(nil), s.items...)
}

// IndexOf returns the visible index of the item owning a.
func (s *Store) IndexOf(a surface.Anchor) (int, bool) {
	i := s.visibleIndex(a)
	return i, i >= 0
}

// AbsoluteIndexOf returns the index of the item owning a among all items.
func (s *Store) AbsoluteIndexOf(a surface.Anchor) (int, bool) {
	item, ok := s.byAnchor[a]
	if !ok {
		return -1, false
	}
	return s.indexOfItem(item), true
}

// ItemAt returns the i-th visible item.
func (s *Store) ItemAt(i int) (*Item, bool) {
	visible := s.VisibleItems()
	if i < 0 || i >= len(visible) {
		return nil, false
	}
	return visible[i], true
}

// ItemMin returns the anchor of the first visible item.
func (s *Store) ItemMin() (surface.Anchor, bool) {
	if it := s.firstVisible(); it != nil {
		return it.Anchor, true
	}
	return surface.NoAnchor, false
}

// ItemMax returns the anchor of the last visible item.
func (s *Store) ItemMax() (surface.Anchor, bool) {
	if it := s.lastVisible(); it != nil {
		return it.Anchor, true
	}
	return surface.NoAnchor, false
}

// visibleIndex returns the position of a among visible items, or -1.
func (s *Store) visibleIndex(a surface.Anchor) int {
	n := 0
	for _, it := range s.items {
		if !it.Visible {
			continue
		}
		if it.Anchor == a {
			return n
		}
		n++
	}
	return -1
}
