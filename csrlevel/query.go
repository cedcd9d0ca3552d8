package csrlevel

import "sort"

// Degree returns vertex v's out-degree in this level. Complexity: O(1).
func (l *Level) Degree(v NodeID) int {
	if int(v)+1 >= len(l.VertexTable) {
		return 0
	}
	return int(l.VertexTable[v+1].Start - l.VertexTable[v].Start)
}

// Neighbors returns v's adjacency slice. For an uncompressed level this is
// a zero-copy view into EdgeTable; for a compressed level it decodes into
// scratch (reallocating scratch if it is too small) and returns that.
// Complexity: O(degree(v)).
func (l *Level) Neighbors(v NodeID, scratch []NodeID) []NodeID {
	if int(v)+1 >= len(l.VertexTable) {
		return nil
	}
	start, end := l.VertexTable[v].Start, l.VertexTable[v+1].Start
	if !l.compressed {
		return l.EdgeTable[start:end]
	}
	return l.decodeBlock(v, scratch[:0])
}

// Find reports the position within v's adjacency slice of an edge to
// target, using binary search when the level's adjacency is known sorted
// and a linear scan otherwise. The returned index is relative to the
// slice returned by Neighbors(v, ...), i.e. in [0, Degree(v)).
// Complexity: O(log degree(v)) sorted, O(degree(v)) otherwise.
func (l *Level) Find(v NodeID, target NodeID, scratch []NodeID) (int, bool) {
	nbrs := l.Neighbors(v, scratch)
	if l.Sorted {
		idx := sort.Search(len(nbrs), func(i int) bool { return nbrs[i] >= target })
		if idx < len(nbrs) && nbrs[idx] == target {
			return idx, true
		}
		return 0, false
	}
	for i, n := range nbrs {
		if n == target {
			return i, true
		}
	}
	return 0, false
}

// Iterator is a zero-allocation cursor over one vertex's adjacency slice:
// an explicit iterator value, no hidden generator state.
type Iterator struct {
	nbrs []NodeID
	cursor int
	remaining int
}

// Iter returns a fresh Iterator over v's adjacency. For a compressed
// level, scratch is decoded into once at Iter creation (Next itself never
// allocates).
func (l *Level) Iter(v NodeID, scratch []NodeID) Iterator {
	nbrs := l.Neighbors(v, scratch)
	return Iterator{nbrs: nbrs, remaining: len(nbrs)}
}

// Next advances the iterator, returning the next neighbor and true, or
// the zero value and false once exhausted.
func (it *Iterator) Next() (NodeID, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	n := it.nbrs[it.cursor]
	it.cursor++
	it.remaining--
	return n, true
}

// Remaining reports how many neighbors Next has not yet yielded.
func (it *Iterator) Remaining() int {
	return it.remaining
}

// Index returns the position, within the slice this iterator was built
// over, of the neighbor most recently returned by Next. Only meaningful
// after at least one Next call has returned true.
func (it *Iterator) Index() int {
	return it.cursor - 1
}
