// Package surface defines the render surface an item store draws into and
// provides Buffer, an in-memory implementation of it.
package surface

// Anchor is an opaque handle to a block. It stays valid while other blocks
// are inserted or removed and is never reused while its block exists.
type Anchor string

// NoAnchor is the zero Anchor. As an insertion point it means "at the end".
const NoAnchor Anchor = ""

// Meta keys the item store attaches to its blocks.
const (
	MetaLevel  = "level"
	MetaData   = "data"
	MetaStatic = "static" // header and footer blocks
)

// Surface is the substrate that stores rendered blocks in a linear order.
type Surface interface {
	// InsertBlock materializes lines as a new block placed directly before
	// the block owned by before, or at the end when before is NoAnchor.
	InsertBlock(before Anchor, lines []string) (Anchor, error)

	// RemoveBlock deletes the block owned by a.
	RemoveBlock(a Anchor) error

	// BlockLength returns the number of lines of the block, 0 if unknown.
	BlockLength(a Anchor) int

	// Compare orders two anchors by their physical position:
	// negative if a comes first, positive if b does, 0 if equal.
	Compare(a, b Anchor) int

	// Next returns the block following a.
	Next(a Anchor) (Anchor, bool)

	// First returns the first block of the surface.
	First() (Anchor, bool)

	SetMeta(a Anchor, key string, value any)
	Meta(a Anchor, key string) (any, bool)

	// SetVisibility shows or hides a block.
	SetVisibility(a Anchor, visible bool)

	// Highlight toggles the visual mark indication of a block.
	Highlight(a Anchor, on bool)

	FocusPosition() (Anchor, bool)
	SetFocusPosition(a Anchor)
}
