package model

import "github.com/nikbrunner/lister/internal/surface"

// determineLevel computes the level of an item about to take index idx.
// Without a predecessor the level is 0; without a request it inherits the
// predecessor's level; otherwise it is the request clamped to one level
// deeper than the predecessor.
func (s *Store) determineLevel(idx, requested int, has bool) int {
	if idx <= 0 || len(s.items) == 0 {
		return 0
	}
	idx = min(idx, len(s.items))
	prev := s.items[idx-1].Level
	if !has {
		return prev
	}
	return min(max(requested, 0), prev+1)
}

// setLevel updates an item's level and the level meta of its block.
func (s *Store) setLevel(item *Item, level int) {
	item.Level = level
	s.surface.SetMeta(item.Anchor, surface.MetaLevel, level)
}

// normalizeLevels restores level continuity from index i on, after the
// item before i changed or went away. Runs that became too deep are
// promoted as a whole so their inner structure is kept.
func (s *Store) normalizeLevels(i int) {
	for i < len(s.items) {
		allowed := 0
		if i > 0 {
			allowed = s.items[i-1].Level + 1
		}
		level := s.items[i].Level
		if level <= allowed {
			return
		}
		delta := level - allowed
		j := i
		for ; j < len(s.items) && s.items[j].Level >= level; j++ {
			s.setLevel(s.items[j], s.items[j].Level-delta)
		}
		s.logger.Debug("promoted items", "from", i, "to", j-1, "by", delta)
		i = j
	}
}

// sublist returns the maximal run around index i whose items are all at
// least as deep as the item at i.
func (s *Store) sublist(i int) (int, int) {
	level := s.items[i].Level
	lo, hi := i, i
	for lo > 0 && s.items[lo-1].Level >= level {
		lo--
	}
	for hi < len(s.items)-1 && s.items[hi+1].Level >= level {
		hi++
	}
	return lo, hi
}

// descendants returns the last index of the run strictly deeper than the
// item at i, or i itself for a leaf.
func (s *Store) descendants(i int) int {
	level := s.items[i].Level
	hi := i
	for hi < len(s.items)-1 && s.items[hi+1].Level > level {
		hi++
	}
	return hi
}

// SublistBoundaries returns the sublist containing the item at pos: the
// item together with its same-level run mates and their descendants,
// bounded by the nearest shallower items. Indexes count all items.
func (s *Store) SublistBoundaries(pos Position) (first, last surface.Anchor, firstIndex, lastIndex int, err error) {
	i, _, err := s.resolve(pos)
	if err != nil {
		return surface.NoAnchor, surface.NoAnchor, -1, -1, err
	}
	lo, hi := s.sublist(i)
	return s.items[lo].Anchor, s.items[hi].Anchor, lo, hi, nil
}

// Descendants returns the item at pos followed by every item nested
// below it.
func (s *Store) Descendants(pos Position) ([]*Item, error) {
	i, _, err := s.resolve(pos)
	if err != nil {
		return nil, err
	}
	return append([]*Item(nil), s.items[i:s.descendants(i)+1]...), nil
}
