package csrlevel

import "errors"

// NodeID is a dense, non-negative vertex identifier in [0, maxNodes).
// IDs are never reused after a node is logically deleted within a run.
type NodeID uint32

// Sentinel errors for csrlevel construction and queries.
var (
	// ErrOutOfOrder indicates a StreamBuilder received a tail lower than
	// (or, within a tail, a head out of sort order relative to) a
	// previously pushed adjacency.
	ErrOutOfOrder = errors.New("csrlevel: adjacency pushed out of sorted order")

	// ErrVertexOutOfRange indicates a vertex index ≥ maxNodes was used.
	ErrVertexOutOfRange = errors.New("csrlevel: vertex index out of range")

	// ErrDegreeOverflow indicates the sum of supplied degrees does not fit
	// the edge table size computed from the prefix sum (caller/builder
	// mismatch).
	ErrDegreeOverflow = errors.New("csrlevel: degree sum overflows edge table")

	// ErrAlreadyBuilt indicates Finish was called twice on the same builder.
	ErrAlreadyBuilt = errors.New("csrlevel: builder already produced a Level")
)

// BeginRecord is one entry of a Level's vertex table: the offset into the
// edge table at which vertex v's adjacency slice begins. vertexTable[v+1]
// (or the trailing sentinel) marks the exclusive end of that slice.
type BeginRecord struct {
	Start uint64
}

// Level is an immutable CSR pair: VertexTable has length maxNodes+1 and is
// monotone non-decreasing; its final entry (the sentinel) equals
// len(EdgeTable). EdgeTable holds the flattened, per-vertex adjacency.
//
// Sorted reports whether every vertex's adjacency slice is sorted by
// target NodeID; Find uses binary search only when Sorted is true.
//
// A level converted with Level.WithCompression drops EdgeTable (nil) and
// keeps each vertex's adjacency as a delta-encoded, packed block, decoded
// on demand in Neighbors/Iter; see compressed.go.
type Level struct {
	VertexTable []BeginRecord
	EdgeTable []NodeID

	Sorted bool
	compressed bool
	blocks []compressedBlock // only set when compressed
}

// MaxNodes returns the number of vertices this level has a slot for
// (VertexTable has len == MaxNodes+1).
func (l *Level) MaxNodes() NodeID {
	if len(l.VertexTable) == 0 {
		return 0
	}
	return NodeID(len(l.VertexTable) - 1)
}

// EdgeCount returns the total number of edges materialized in this level.
func (l *Level) EdgeCount() int {
	if n := len(l.VertexTable); n > 0 {
		return int(l.VertexTable[n-1].Start)
	}
	return 0
}
