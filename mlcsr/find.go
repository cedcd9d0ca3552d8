package mlcsr

// Find scans levels newest-to-oldest for a visible edge src→dst ("first
// result wins"), skipping retired levels. Within a level it uses
// binary search when the level is sorted and a linear scan otherwise.
// Complexity on sorted levels: O(levels * log degree) in the worst case,
// but short-circuits on the first hit, so a recently-inserted edge is
// found in O(log degree).
func (s *Store) Find(src, dst NodeID) (EdgeID, bool) {
	levels := s.snapshotLevels()
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] == nil {
			continue
		}
		idx, ok := levels[i].Find(src, dst, nil)
		if !ok {
			continue
		}
		e := EdgeID{Level: i, Index: int(levels[i].VertexTable[src].Start) + idx}
		if s.visibleAt(e, len(levels)-1) {
			return e, true
		}
	}
	return NilEdge, false
}
