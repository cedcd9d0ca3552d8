package csrlevel

// Builder constructs a Level from a precomputed per-vertex degree array.
// The vertex table is the prefix sum of degrees; the caller writes each
// vertex's adjacency into the slice returned by AdjacencySlice, in
// whatever order it likes (Finish(sorted) records whether that order
// happens to be sorted by target).
//
// A Builder is single-use: call Finish once.
type Builder struct {
	maxNodes NodeID
	vt []BeginRecord
	et []NodeID
	built bool
}

// NewFromDegrees allocates the vertex table via prefix sum over degrees
// (len(degrees) must equal int(maxNodes)) and the edge table sized to the
// degree sum. Complexity: O(maxNodes) for the prefix sum, O(sum(degrees))
// for the allocation.
func NewFromDegrees(maxNodes NodeID, degrees []uint32) *Builder {
	vt := make([]BeginRecord, int(maxNodes)+1)
	var offset uint64
	for v := NodeID(0); v < maxNodes; v++ {
		vt[v] = BeginRecord{Start: offset}
		offset += uint64(degrees[v])
	}
	vt[maxNodes] = BeginRecord{Start: offset}

	return &Builder{
		maxNodes: maxNodes,
		vt: vt,
		et: make([]NodeID, offset),
	}
}

// AdjacencySlice returns the edge-table window reserved for vertex v's
// out-neighbors, ready for the caller to populate in place. Returns
// ErrVertexOutOfRange if v ≥ maxNodes.
func (b *Builder) AdjacencySlice(v NodeID) ([]NodeID, error) {
	if v >= b.maxNodes {
		return nil, ErrVertexOutOfRange
	}
	return b.et[b.vt[v].Start:b.vt[v+1].Start], nil
}

// Finish freezes the Builder into a *Level. sorted must be true only if
// every vertex's adjacency slice is actually sorted by target NodeID
// (Level.Find relies on the caller's honesty here).
func (b *Builder) Finish(sorted bool) (*Level, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	return &Level{
		VertexTable: b.vt,
		EdgeTable: b.et,
		Sorted: sorted,
	}, nil
}
