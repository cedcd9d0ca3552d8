package ingest

import (
	"context"

	"github.com/katalvlaran/graphline/mlcsr"
)

// NodeID re-exports the engine-wide vertex identifier type so callers of
// this package never need to import mlcsr just to name a DataSource edge
// endpoint.
type NodeID = mlcsr.NodeID

// DataSource is the seam between an external edge feed and the driver's
// Ingester. It lives here rather than in engine because driver and
// loader both need the contract, and engine is the
// package that imports and wires the rest of the module together, so
// giving the interface to engine would force driver and loader to import
// their own aggregator. Same shape, reachable from the bottom of the
// dependency graph instead of the top.
type DataSource interface {
	// Pull fetches up to maxEdges new edges into the source's internal
	// cursor, returning false once exhausted.
	Pull(ctx context.Context, maxEdges int) (bool, error)

	// NextEdge drains one edge pulled by the most recent Pull. ok is
	// false once the current pull's batch is exhausted.
	NextEdge() (tail, head NodeID, weight float32, ok bool)

	// Weighted reports whether NextEdge's weight return is meaningful:
	// simple vs. general loaders collapse to a capability check on one
	// interface rather than a subtype.
	Weighted() bool
}

// StatSource is an optional capability: a DataSource that can report its
// total size upfront.
type StatSource interface {
	Stat() (vertices, edges int64, ok bool)
}

// RewindSource is an optional capability: a DataSource that can restart
// from the beginning. The Driver never calls Rewind.
type RewindSource interface {
	Rewind() error
}
