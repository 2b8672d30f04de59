package tree_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/lister/internal/tree"
	"gotest.tools/v3/assert"
)

// flat parses "value:level" pairs.
func flat(pairs ...string) []tree.Entry[string] {
	out := make([]tree.Entry[string], len(pairs))
	for i, s := range pairs {
		v, l, _ := strings.Cut(s, ":")
		out[i] = tree.Entry[string]{Value: v, Level: int(l[0] - '0')}
	}
	return out
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []tree.Entry[string]
	}{
		{name: "empty"},
		{name: "flat", entries: flat("a:0", "b:0", "c:0")},
		{name: "nested", entries: flat("a:0", "a1:1", "x:2", "a2:1", "b:0")},
		{name: "base level 2", entries: flat("a:2", "b:3", "c:2")},
		{name: "deep dive and return", entries: flat("a:0", "b:1", "c:2", "d:3", "e:0")},
		{name: "starts in a sublist", entries: flat("a1:1", "b:0", "c:0")},
		{name: "starts two levels down", entries: flat("x:2", "a1:1", "b:0", "b1:1")},
		{name: "shallower than first", entries: flat("a:1", "b:2", "c:0")},
		{name: "skipped level", entries: flat("a:0", "b:2", "c:1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tree.Unwrap(tree.Wrap(tt.entries), tree.MinLevel(tt.entries))
			assert.DeepEqual(t, got, tt.entries)
		})
	}
}

func TestWrap_Shape(t *testing.T) {
	nodes := tree.Wrap(flat("a:0", "a1:1", "x:2", "a2:1", "b:0"))

	assert.Equal(t, len(nodes), 2)
	assert.Equal(t, nodes[0].Value, "a")
	assert.Equal(t, len(nodes[0].Children), 2)
	assert.Equal(t, nodes[0].Children[0].Children[0].Value, "x")
	assert.Assert(t, nodes[1].Children == nil)
}

func TestWrap_ShallowerThanFirst(t *testing.T) {
	nodes := tree.Wrap(flat("a:1", "b:2", "c:0"))

	assert.Equal(t, len(nodes), 2)
	assert.Equal(t, nodes[0].Value, "a")
	assert.Equal(t, nodes[0].Indent, 1)
	assert.Equal(t, nodes[0].Children[0].Value, "b")
	assert.Equal(t, nodes[1].Value, "c")
	assert.Equal(t, nodes[1].Indent, 0)
}

func TestReorder_KeepsIndentedRunsApart(t *testing.T) {
	byValue := tree.SortBy(func(a, b string) bool { return a < b })
	entries := flat("z:1", "c:0", "b:0")

	got := tree.Unwrap(tree.Reorder(tree.Wrap(entries), byValue), 0)

	assert.DeepEqual(t, got, flat("z:1", "b:0", "c:0"))
}

func TestReorder_IdentityFromSublist(t *testing.T) {
	entries := flat("a1:1", "b:0", "c:0")

	got := tree.Unwrap(tree.Reorder(tree.Wrap(entries), tree.Identity[string]()), 0)

	assert.DeepEqual(t, got, entries)
}

func TestOutdent(t *testing.T) {
	nodes := tree.Outdent(tree.Wrap(flat("a:2", "b:6", "c:4", "d:0")))

	assert.DeepEqual(t, tree.Unwrap(nodes, 0), flat("a:0", "b:1", "c:1", "d:0"))
}

func TestReorder_AppliesAtEveryDepth(t *testing.T) {
	nodes := tree.Wrap(flat("a:0", "a1:1", "a2:1", "b:0", "b1:1", "b2:1"))

	got := tree.Unwrap(tree.Reorder(nodes, tree.Reverse[string]()), 0)

	assert.DeepEqual(t, got, flat("b:0", "b2:1", "b1:1", "a:0", "a2:1", "a1:1"))
}

func TestReorder_DoesNotModifyInput(t *testing.T) {
	nodes := tree.Wrap(flat("b:0", "a:0"))

	_ = tree.Reorder(nodes, tree.SortBy(func(a, b string) bool { return a < b }))

	assert.Equal(t, nodes[0].Value, "b")
}

func TestReorder_Identity(t *testing.T) {
	entries := flat("a:0", "a1:1", "x:2", "a2:1", "b:0")

	got := tree.Unwrap(tree.Reorder(tree.Wrap(entries), tree.Identity[string]()), 0)

	assert.DeepEqual(t, got, entries)
}

func TestReorder_DropsNil(t *testing.T) {
	pad := func(nodes []*tree.Node[string]) []*tree.Node[string] {
		return append([]*tree.Node[string]{nil}, nodes...)
	}

	got := tree.Unwrap(tree.Reorder(tree.Wrap(flat("a:0", "b:1")), pad), 0)

	assert.DeepEqual(t, got, flat("a:0", "b:1"))
}

func TestSortBy_Stable(t *testing.T) {
	byLen := tree.SortBy(func(a, b string) bool { return len(a) < len(b) })

	got := tree.Unwrap(tree.Reorder(tree.Wrap(flat("bb:0", "x:0", "aa:0", "y:0")), byLen), 0)

	assert.DeepEqual(t, got, flat("x:0", "y:0", "bb:0", "aa:0"))
}

func TestKeepAndMap(t *testing.T) {
	nodes := tree.Wrap(flat("a:0", "skip:1", "gone:2", "b:1"))

	kept := tree.Reorder(nodes, tree.Keep(func(v string) bool { return v != "skip" }))
	upper := tree.Map(kept, strings.ToUpper)

	assert.DeepEqual(t, tree.Unwrap(upper, 0), flat("A:0", "B:1"))
}

func TestNest(t *testing.T) {
	nodes := tree.Wrap(flat("a:0", "a1:1", "x:2", "b:0"))

	got := tree.Nest(nodes)

	assert.DeepEqual(t, got, []any{"a", []any{"a1", []any{"x"}}, "b"})
}

func TestNest_Indented(t *testing.T) {
	nodes := tree.Wrap(flat("x:2", "a1:1", "a2:2", "b:0"))

	got := tree.Nest(nodes)

	assert.DeepEqual(t, got, []any{[]any{[]any{"x"}}, []any{"a1", []any{"a2"}}, "b"})
}
