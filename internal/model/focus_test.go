package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nikbrunner/lister/internal/model"
	"github.com/nikbrunner/lister/internal/surface"
	"gotest.tools/v3/assert"
)

// recordEvents registers handlers appending "enter x" / "leave x".
func recordEvents(s *model.Store) *[]string {
	var events []string
	name := func(s *model.Store, a surface.Anchor) string {
		if it, ok := s.Item(a); ok {
			return fmt.Sprint(it.Data)
		}
		return string(a)
	}
	s.OnEnter(func(s *model.Store, a surface.Anchor) {
		events = append(events, "enter "+name(s, a))
	})
	s.OnLeave(func(s *model.Store, a surface.Anchor) {
		events = append(events, "leave "+name(s, a))
	})
	return &events
}

func focusedData(t *testing.T, s *model.Store) any {
	t.Helper()
	item, ok := s.FocusedItem()
	if !ok {
		t.Fatal("store is not focused")
	}
	return item.Data
}

func TestGoto_DispatchesLeaveThenEnter(t *testing.T) {
	s, buf := newTestStore(t, []string{"a", "b", "c"})
	events := recordEvents(s)

	assert.NilError(t, s.Goto(model.FirstItem))
	assert.NilError(t, s.Goto(model.LastItem))
	assert.NilError(t, s.Goto(model.AtIndex(1)))

	assert.DeepEqual(t, *events, []string{
		"enter a",
		"leave a", "enter c",
		"leave c", "enter b",
	})
	a, ok := buf.FocusPosition()
	assert.Assert(t, ok)
	focus, _ := s.Focus()
	assert.Equal(t, a, focus)
}

func TestGoto_HiddenItem(t *testing.T) {
	s, _ := newTestStore(t, intsUpTo(3))
	hidden := s.Items()[0]
	assert.NilError(t, s.SetFilter(func(d any) bool { return d.(int) > 0 }))

	err := s.Goto(model.AtAnchor(hidden.Anchor))

	var visErr model.VisibilityError
	assert.Assert(t, errors.As(err, &visErr))
	assert.Equal(t, visErr.Anchor, hidden.Anchor)
	_, focused := s.Focus()
	assert.Assert(t, !focused)
}

func TestDispatch_NoReentrantEvents(t *testing.T) {
	s, _ := newTestStore(t, []string{"a", "b", "c"})
	events := recordEvents(s)
	s.OnEnter(func(s *model.Store, _ surface.Anchor) {
		s.Next()
	})

	assert.NilError(t, s.Goto(model.FirstItem))

	assert.DeepEqual(t, *events, []string{"enter a"})
	assert.Equal(t, focusedData(t, s), "b")
}

func TestNextPrev(t *testing.T) {
	s, _ := newTestStore(t, []string{"a", "b", "c"})

	assert.Assert(t, s.Next())
	assert.Equal(t, focusedData(t, s), "a")
	assert.Assert(t, s.Next())
	assert.Assert(t, s.Next())
	assert.Assert(t, !s.Next(), "no wrap at the end")
	assert.Equal(t, focusedData(t, s), "c")

	assert.Assert(t, s.Prev())
	assert.Equal(t, focusedData(t, s), "b")

	s.Unfocus()
	assert.Assert(t, s.Prev())
	assert.Equal(t, focusedData(t, s), "c")
}

func TestNext_SkipsHiddenItems(t *testing.T) {
	s, _ := newTestStore(t, intsUpTo(4))
	assert.NilError(t, s.SetFilter(func(d any) bool { return d.(int)%2 == 0 }))

	s.Next()
	s.Next()
	assert.Equal(t, focusedData(t, s), 2)
}

func TestLocked_SurvivingFocusKeepsItem(t *testing.T) {
	s, _ := newTestStore(t, intsUpTo(4))
	assert.NilError(t, s.Goto(model.AtIndex(2)))
	events := recordEvents(s)

	err := s.Locked(func() error {
		return s.RemoveRange(model.AtIndex(0), model.AtIndex(1))
	})
	assert.NilError(t, err)

	assert.Equal(t, focusedData(t, s), 2)
	focus, _ := s.Focus()
	line, _ := s.IndexOf(focus)
	assert.Equal(t, line, 0)
	assert.DeepEqual(t, *events, []string{"leave 2", "enter 2"})
}

func TestLocked_RemovedFocusClampsLine(t *testing.T) {
	s, _ := newTestStore(t, intsUpTo(4))
	assert.NilError(t, s.Goto(model.AtIndex(4)))
	events := recordEvents(s)

	err := s.Locked(func() error {
		return s.RemoveRange(model.AtIndex(3), model.AtIndex(4))
	})
	assert.NilError(t, err)

	assert.Equal(t, focusedData(t, s), 2)
	assert.DeepEqual(t, *events, []string{"leave 4", "enter 2"})
}

func TestLocked_EmptiedList(t *testing.T) {
	s, buf := newTestStore(t, []string{"a", "b"})
	assert.NilError(t, s.Goto(model.FirstItem))

	assert.NilError(t, s.Locked(func() error {
		return s.RemoveRange(model.Position{}, model.Position{})
	}))

	_, focused := s.Focus()
	assert.Assert(t, !focused)
	_, focused = buf.FocusPosition()
	assert.Assert(t, !focused)
}

func TestLocked_Nested(t *testing.T) {
	s, _ := newTestStore(t, []string{"a", "b", "c"})
	assert.NilError(t, s.Goto(model.AtIndex(1)))
	events := recordEvents(s)

	err := s.Locked(func() error {
		return s.Locked(func() error {
			_, err := s.Add("d")
			return err
		})
	})
	assert.NilError(t, err)

	assert.DeepEqual(t, *events, []string{"leave b", "enter b"})
}

func TestLocked_ReturnsBodyError(t *testing.T) {
	s, _ := newTestStore(t, []string{"a"})
	want := errors.New("boom")

	err := s.Locked(func() error { return want })

	assert.Equal(t, err, want)
}

func TestRemove_FocusedItem(t *testing.T) {
	s, _ := newTestStore(t, []string{"a", "b", "c"})
	assert.NilError(t, s.Goto(model.AtIndex(1)))
	events := recordEvents(s)

	assert.NilError(t, s.Remove(model.Point))

	assert.Equal(t, focusedData(t, s), "c")
	assert.DeepEqual(t, *events, []string{"leave b", "enter c"})
}

// onFirstLeave registers a leave handler running f the first time only.
func onFirstLeave(s *model.Store, f func(s *model.Store)) {
	done := false
	s.OnLeave(func(s *model.Store, _ surface.Anchor) {
		if !done {
			done = true
			f(s)
		}
	})
}

func TestLocked_LeaveHandlerMutatesStore(t *testing.T) {
	ascendingInt := func(a, b any) bool { return a.(int) < b.(int) }
	removeAt := func(pos model.Position) func(s *model.Store) {
		return func(s *model.Store) {
			if err := s.Remove(pos); err != nil {
				t.Errorf("Remove(%s) in handler: %v", pos, err)
			}
		}
	}

	tests := []struct {
		name    string
		input   any
		focus   model.Position
		handler func(s *model.Store)
		op      func(s *model.Store) error
		want    []string
	}{
		{
			name:    "sort range",
			input:   []int{3, 1, 2},
			focus:   model.FirstItem,
			handler: removeAt(model.LastItem),
			op: func(s *model.Store) error {
				_, err := s.SortRange(ascendingInt, model.Position{}, model.Position{})
				return err
			},
			want: []string{"1:0", "3:0"},
		},
		{
			name:    "move up",
			input:   []string{"a", "b", "c"},
			focus:   model.LastItem,
			handler: removeAt(model.FirstItem),
			op: func(s *model.Store) error {
				_, err := s.MoveUp(model.Point)
				return err
			},
			want: []string{"c:0", "b:0"},
		},
		{
			name:    "move down",
			input:   []string{"a", "b", "c"},
			focus:   model.AtIndex(1),
			handler: removeAt(model.FirstItem),
			op: func(s *model.Store) error {
				_, err := s.MoveDown(model.Point)
				return err
			},
			want: []string{"c:0", "b:0"},
		},
		{
			name:    "set filter",
			input:   []string{"a", "b", "c"},
			focus:   model.AtIndex(1),
			handler: removeAt(model.FirstItem),
			op: func(s *model.Store) error {
				return s.SetFilter(func(d any) bool { return d != "c" })
			},
			want: []string{"b:0", "c:0"},
		},
		{
			name:    "remove focused",
			input:   []string{"a", "b", "c", "d"},
			focus:   model.AtIndex(1),
			handler: removeAt(model.AtIndex(2)),
			op:      func(s *model.Store) error { return s.Remove(model.Point) },
			want:    []string{"a:0", "d:0"},
		},
		{
			name:    "remove range",
			input:   []string{"a", "b", "c", "d"},
			focus:   model.AtIndex(1),
			handler: removeAt(model.LastItem),
			op: func(s *model.Store) error {
				return s.RemoveRange(model.AtIndex(1), model.LastItem)
			},
			want: []string{"a:0"},
		},
		{
			name:    "replace range",
			input:   []string{"a", "b", "c", "d"},
			focus:   model.AtIndex(1),
			handler: removeAt(model.LastItem),
			op: func(s *model.Store) error {
				_, err := s.ReplaceRange(model.AtIndex(1), model.LastItem, []any{"x"})
				return err
			},
			want: []string{"a:0", "x:0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, buf := newTestStore(t, tt.input)
			assert.NilError(t, s.Goto(tt.focus))
			onFirstLeave(s, tt.handler)

			assert.NilError(t, tt.op(s))

			assert.DeepEqual(t, layout(s), tt.want)
			checkInvariants(t, s, buf)
			if item, ok := s.FocusedItem(); ok {
				assert.Assert(t, item.Visible)
			}
		})
	}
}

func TestRemove_LeaveHandlerRemovesTarget(t *testing.T) {
	s, buf := newTestStore(t, []string{"a", "b", "c"})
	assert.NilError(t, s.Goto(model.AtIndex(1)))
	onFirstLeave(s, func(s *model.Store) {
		assert.NilError(t, s.Remove(model.Point))
	})

	err := s.Remove(model.Point)

	var posErr model.PositionError
	assert.Assert(t, errors.As(err, &posErr))
	assert.DeepEqual(t, layout(s), []string{"a:0", "c:0"})
	assert.Equal(t, focusedData(t, s), "c")
	checkInvariants(t, s, buf)
}
