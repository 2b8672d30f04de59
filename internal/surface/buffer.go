package surface

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

type block struct {
	anchor      Anchor
	rank        string
	lines       []string
	meta        map[string]any
	hidden      bool
	highlighted bool
}

// Buffer is an in-memory Surface. Blocks are kept in a slice sorted by rank;
// lookups by anchor go through an index and a binary search over ranks.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	blocks []*block
	index  map[Anchor]*block
	focus  Anchor
	logger *slog.Logger
}

// BufferParams holds parameters for creating a new Buffer.
type BufferParams struct {
	Logger *slog.Logger // optional, slog.Default() if nil
}

// NewBuffer creates an empty Buffer.
func NewBuffer(params BufferParams) *Buffer {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Buffer{
		index:  make(map[Anchor]*block),
		logger: logger,
	}
}

// UnknownAnchorError is returned for anchors that own no block.
type UnknownAnchorError struct {
	Anchor Anchor
}

func (e UnknownAnchorError) Error() string {
	return fmt.Sprintf("unknown anchor %q", string(e.Anchor))
}

// position returns the slice index of blk.
func (b *Buffer) position(blk *block) int {
	return sort.Search(len(b.blocks), func(i int) bool {
		return b.blocks[i].rank >= blk.rank
	})
}

// InsertBlock implements Surface.
func (b *Buffer) InsertBlock(before Anchor, lines []string) (Anchor, error) {
	pos := len(b.blocks)
	if before != NoAnchor {
		blk, ok := b.index[before]
		if !ok {
			return NoAnchor, UnknownAnchorError{Anchor: before}
		}
		pos = b.position(blk)
	}

	rank, err := b.rankAt(pos)
	if err == errNoRankSpace {
		b.rebalance()
		rank, err = b.rankAt(pos)
	}
	if err != nil {
		return NoAnchor, err
	}

	blk := &block{
		anchor: Anchor(uuid.NewString()),
		rank:   rank,
		lines:  append([]string(nil), lines...),
		meta:   make(map[string]any),
	}
	b.blocks = append(b.blocks, nil)
	copy(b.blocks[pos+1:], b.blocks[pos:])
	b.blocks[pos] = blk
	b.index[blk.anchor] = blk
	return blk.anchor, nil
}

// rankAt computes a rank for a block inserted at slice index pos.
func (b *Buffer) rankAt(pos int) (string, error) {
	var lower, upper string
	if pos > 0 {
		lower = b.blocks[pos-1].rank
	}
	if pos < len(b.blocks) {
		upper = b.blocks[pos].rank
	}
	return rankBetween(lower, upper)
}

// rebalance reassigns evenly spaced ranks to every block, keeping order.
func (b *Buffer) rebalance() {
	ranks := spreadRanks(len(b.blocks))
	for i, blk := range b.blocks {
		blk.rank = ranks[i]
	}
	b.logger.Warn("rebalanced block ranks", "blocks", len(b.blocks))
}

// RemoveBlock implements Surface.
func (b *Buffer) RemoveBlock(a Anchor) error {
	blk, ok := b.index[a]
	if !ok {
		return UnknownAnchorError{Anchor: a}
	}
	pos := b.position(blk)
	b.blocks = append(b.blocks[:pos], b.blocks[pos+1:]...)
	delete(b.index, a)
	if b.focus == a {
		b.focus = NoAnchor
	}
	return nil
}

// BlockLength implements Surface.
func (b *Buffer) BlockLength(a Anchor) int {
	if blk, ok := b.index[a]; ok {
		return len(blk.lines)
	}
	return 0
}

// Compare implements Surface. Unknown anchors sort before every block.
func (b *Buffer) Compare(x, y Anchor) int {
	var rx, ry string
	if blk, ok := b.index[x]; ok {
		rx = blk.rank
	}
	if blk, ok := b.index[y]; ok {
		ry = blk.rank
	}
	switch {
	case rx < ry:
		return -1
	case rx > ry:
		return 1
	default:
		return 0
	}
}

// Next implements Surface.
func (b *Buffer) Next(a Anchor) (Anchor, bool) {
	blk, ok := b.index[a]
	if !ok {
		return NoAnchor, false
	}
	pos := b.position(blk)
	if pos+1 >= len(b.blocks) {
		return NoAnchor, false
	}
	return b.blocks[pos+1].anchor, true
}

// First implements Surface.
func (b *Buffer) First() (Anchor, bool) {
	if len(b.blocks) == 0 {
		return NoAnchor, false
	}
	return b.blocks[0].anchor, true
}

// SetMeta implements Surface.
func (b *Buffer) SetMeta(a Anchor, key string, value any) {
	if blk, ok := b.index[a]; ok {
		blk.meta[key] = value
	}
}

// Meta implements Surface.
func (b *Buffer) Meta(a Anchor, key string) (any, bool) {
	blk, ok := b.index[a]
	if !ok {
		return nil, false
	}
	v, ok := blk.meta[key]
	return v, ok
}

// SetVisibility implements Surface.
func (b *Buffer) SetVisibility(a Anchor, visible bool) {
	if blk, ok := b.index[a]; ok {
		blk.hidden = !visible
	}
}

// Visible reports whether the block is shown.
func (b *Buffer) Visible(a Anchor) bool {
	blk, ok := b.index[a]
	return ok && !blk.hidden
}

// Highlight implements Surface.
func (b *Buffer) Highlight(a Anchor, on bool) {
	if blk, ok := b.index[a]; ok {
		blk.highlighted = on
	}
}

// Highlighted reports whether the block carries the mark indication.
func (b *Buffer) Highlighted(a Anchor) bool {
	blk, ok := b.index[a]
	return ok && blk.highlighted
}

// FocusPosition implements Surface.
func (b *Buffer) FocusPosition() (Anchor, bool) {
	return b.focus, b.focus != NoAnchor
}

// SetFocusPosition implements Surface. Unknown anchors clear the focus.
func (b *Buffer) SetFocusPosition(a Anchor) {
	if _, ok := b.index[a]; !ok {
		a = NoAnchor
	}
	b.focus = a
}

// Lines returns a copy of the block's lines.
func (b *Buffer) Lines(a Anchor) []string {
	blk, ok := b.index[a]
	if !ok {
		return nil
	}
	return append([]string(nil), blk.lines...)
}

// Anchors returns all anchors in physical order.
func (b *Buffer) Anchors() []Anchor {
	out := make([]Anchor, len(b.blocks))
	for i, blk := range b.blocks {
		out[i] = blk.anchor
	}
	return out
}

// Len returns the number of blocks.
func (b *Buffer) Len() int {
	return len(b.blocks)
}
