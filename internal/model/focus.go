package model

import "github.com/nikbrunner/lister/internal/surface"

// OnEnter registers a handler called when the focus enters an item.
func (s *Store) OnEnter(h Handler) {
	s.enter = append(s.enter, h)
}

// OnLeave registers a handler called when the focus leaves an item.
func (s *Store) OnLeave(h Handler) {
	s.leave = append(s.leave, h)
}

// dispatch calls handlers for a. Handlers may mutate the store; any focus
// change they cause does not dispatch again.
func (s *Store) dispatch(handlers []Handler, a surface.Anchor) {
	if s.dispatching || s.suppress > 0 || a == surface.NoAnchor {
		return
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()
	for _, h := range handlers {
		h(s, a)
	}
}

// Focus returns the focused anchor.
func (s *Store) Focus() (surface.Anchor, bool) {
	return s.focus, s.focus != surface.NoAnchor
}

// FocusedItem returns the focused item.
func (s *Store) FocusedItem() (*Item, bool) {
	item, ok := s.byAnchor[s.focus]
	return item, ok
}

// Goto moves the focus onto the item at pos.
func (s *Store) Goto(pos Position) error {
	_, item, err := s.resolve(pos)
	if err != nil {
		return err
	}
	if !item.Visible {
		return VisibilityError{Anchor: item.Anchor}
	}
	if s.locked {
		s.follow = item.Anchor
	}
	s.moveFocus(item.Anchor)
	return nil
}

// Next moves the focus to the following visible item. Without a focus it
// goes to the first one. It reports whether the focus moved.
func (s *Store) Next() bool {
	return s.step(1)
}

// Prev moves the focus to the preceding visible item. Without a focus it
// goes to the last one.
func (s *Store) Prev() bool {
	return s.step(-1)
}

func (s *Store) step(delta int) bool {
	visible := s.VisibleItems()
	if len(visible) == 0 {
		return false
	}
	i := s.visibleIndex(s.focus)
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = len(visible) - 1
	default:
		i += delta
	}
	if i < 0 || i >= len(visible) || visible[i].Anchor == s.focus {
		return false
	}
	if s.locked {
		s.follow = visible[i].Anchor
	}
	s.moveFocus(visible[i].Anchor)
	return true
}

// Unfocus leaves the focused item without entering another one.
func (s *Store) Unfocus() {
	s.moveFocus(surface.NoAnchor)
}

// moveFocus performs the leave, set, enter transition.
func (s *Store) moveFocus(a surface.Anchor) {
	old := s.focus
	if old == a {
		return
	}
	s.dispatch(s.leave, old)
	s.focus = a
	s.surface.SetFocusPosition(a)
	s.dispatch(s.enter, a)
}

// Locked runs body as one transaction. The focused item is left before
// body runs and no enter/leave events fire while it runs. Afterwards the
// focus goes back to the same item if it is still visible, or else to the
// item now on the same visual line, clamped to the last visible item.
//
// Nested calls run body directly.
func (s *Store) Locked(body func() error) error {
	if s.locked {
		return body()
	}

	old := s.focus
	line := s.visibleIndex(old)
	s.dispatch(s.leave, old)

	s.follow = surface.NoAnchor
	err := s.runLocked(body)

	target := s.restoreTarget(old, line)
	s.follow = surface.NoAnchor
	s.focus = target
	s.surface.SetFocusPosition(target)
	s.dispatch(s.enter, target)
	return err
}

func (s *Store) runLocked(body func() error) error {
	s.locked = true
	s.suppress++
	defer func() {
		s.suppress--
		s.locked = false
	}()
	return body()
}

// restoreTarget picks the focus after a locked transaction.
func (s *Store) restoreTarget(old surface.Anchor, line int) surface.Anchor {
	if s.isFocusable(s.follow) {
		return s.follow
	}
	if old == surface.NoAnchor {
		if s.isFocusable(s.focus) {
			return s.focus
		}
		return surface.NoAnchor
	}
	if s.isFocusable(old) {
		return old
	}
	visible := s.VisibleItems()
	if len(visible) == 0 || line < 0 {
		return surface.NoAnchor
	}
	return visible[min(line, len(visible)-1)].Anchor
}

func (s *Store) isFocusable(a surface.Anchor) bool {
	item, ok := s.byAnchor[a]
	return ok && item.Visible
}
