// Package tree converts between flat (value, level) runs and nested nodes,
// and reorders nested nodes with one transform applied at every depth.
package tree

import "sort"

// Node is a value together with its nested children. Indent counts the
// levels a node sits deeper than its place in the tree implies, as for
// the leading entries of a run that starts inside a sublist.
type Node[T any] struct {
	Value    T
	Children []*Node[T]
	Indent   int
}

// Entry is one element of a flat run: a value and its indentation level.
type Entry[T any] struct {
	Value T
	Level int
}

// Transform maps a sibling list to a new sibling list. It may filter,
// permute, duplicate or replace nodes but should keep each node's
// value and children together.
type Transform[T any] func([]*Node[T]) []*Node[T]

// MinLevel returns the smallest level in entries, or 0 for none.
func MinLevel[T any](entries []Entry[T]) int {
	if len(entries) == 0 {
		return 0
	}
	level := entries[0].Level
	for _, e := range entries[1:] {
		level = min(level, e.Level)
	}
	return level
}

// Wrap builds nodes from a flat run. The smallest level is the base
// level; an entry nests under the nearest preceding entry with a smaller
// level. Unwrap(Wrap(entries), MinLevel(entries)) returns entries.
func Wrap[T any](entries []Entry[T]) []*Node[T] {
	if len(entries) == 0 {
		return nil
	}
	base := MinLevel(entries)

	type frame struct {
		level int
		node  *Node[T]
	}
	var roots []*Node[T]
	var stack []frame

	for _, e := range entries {
		n := &Node[T]{Value: e.Value}
		for len(stack) > 0 && stack[len(stack)-1].level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			n.Indent = e.Level - base
			roots = append(roots, n)
		} else {
			top := stack[len(stack)-1]
			n.Indent = e.Level - top.level - 1
			top.node.Children = append(top.node.Children, n)
		}
		stack = append(stack, frame{level: e.Level, node: n})
	}
	return roots
}

// Outdent clears the indent of nodes and their descendants in place, so
// every node sits one level below its parent.
func Outdent[T any](nodes []*Node[T]) []*Node[T] {
	for _, n := range nodes {
		n.Indent = 0
		Outdent(n.Children)
	}
	return nodes
}

// Unwrap flattens nodes depth first. Levels are the nesting depth plus
// base plus the indents along the way.
func Unwrap[T any](nodes []*Node[T], base int) []Entry[T] {
	var out []Entry[T]
	var walk func(nodes []*Node[T], level int)
	walk = func(nodes []*Node[T], level int) {
		for _, n := range nodes {
			out = append(out, Entry[T]{Value: n.Value, Level: level + n.Indent})
			walk(n.Children, level+n.Indent+1)
		}
	}
	walk(nodes, base)
	return out
}

// Reorder applies transform to nodes and, recursively, to the children of
// every resulting node. Leaves are left alone. Consecutive nodes of equal
// indent form one sibling list; nodes never cross into a list of another
// indent. The input is not modified; nil nodes returned by transform are
// dropped.
func Reorder[T any](nodes []*Node[T], transform Transform[T]) []*Node[T] {
	if len(nodes) == 0 {
		return nil
	}
	result := make([]*Node[T], 0, len(nodes))
	for start := 0; start < len(nodes); {
		end := start + 1
		for end < len(nodes) && nodes[end].Indent == nodes[start].Indent {
			end++
		}
		for _, n := range transform(nodes[start:end:end]) {
			if n == nil {
				continue
			}
			result = append(result, &Node[T]{
				Value:    n.Value,
				Children: Reorder(n.Children, transform),
				Indent:   nodes[start].Indent,
			})
		}
		start = end
	}
	return result
}

// SortBy returns a stable sorting transform.
func SortBy[T any](less func(a, b T) bool) Transform[T] {
	return func(nodes []*Node[T]) []*Node[T] {
		sorted := append([]*Node[T](nil), nodes...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return less(sorted[i].Value, sorted[j].Value)
		})
		return sorted
	}
}

// Identity returns a transform that keeps every sibling list as is.
func Identity[T any]() Transform[T] {
	return func(nodes []*Node[T]) []*Node[T] { return nodes }
}

// Reverse returns a transform that reverses every sibling list.
func Reverse[T any]() Transform[T] {
	return func(nodes []*Node[T]) []*Node[T] {
		out := make([]*Node[T], len(nodes))
		for i, n := range nodes {
			out[len(nodes)-1-i] = n
		}
		return out
	}
}

// Keep returns a transform dropping nodes (and their children) whose
// value does not satisfy keep.
func Keep[T any](keep func(T) bool) Transform[T] {
	return func(nodes []*Node[T]) []*Node[T] {
		var out []*Node[T]
		for _, n := range nodes {
			if keep(n.Value) {
				out = append(out, n)
			}
		}
		return out
	}
}

// Map converts a node tree into another value type, keeping its shape.
func Map[T, U any](nodes []*Node[T], f func(T) U) []*Node[U] {
	if nodes == nil {
		return nil
	}
	out := make([]*Node[U], len(nodes))
	for i, n := range nodes {
		out[i] = &Node[U]{Value: f(n.Value), Children: Map(n.Children, f), Indent: n.Indent}
	}
	return out
}

// Nest converts nodes to a nested sequence: each value is followed by a
// []any of its children when it has any. An indented node is wrapped in
// one extra []any per level of indent.
func Nest[T any](nodes []*Node[T]) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		piece := []any{n.Value}
		if len(n.Children) > 0 {
			piece = append(piece, Nest(n.Children))
		}
		for range n.Indent {
			piece = []any{piece}
		}
		out = append(out, piece...)
	}
	return out
}
