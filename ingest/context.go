// Package ingest defines the explicit context threaded through every
// mutator in the engine: callers pass a Context to every mutating call
// instead of relying on thread-local storage, which would couple the
// library to a specific concurrency model.
package ingest

import "github.com/google/uuid"

// Context carries the current logical timestamp and the session
// identifying which ingest run is driving a mutation. Every delta/driver
// mutator that needs "now" or a correlatable run ID takes one of these by
// value instead of reading a package-level global or thread-local.
type Context struct {
	// NowTimestamp is the logical clock value stamping any Allocated /
	// Deleted transition performed under this Context. It need not track
	// wall-clock time; the driver advances it once per batch.
	NowTimestamp int64

	// SessionID identifies the ingest run this Context belongs to, for
	// log correlation and metrics labeling.
	SessionID uuid.UUID
}
