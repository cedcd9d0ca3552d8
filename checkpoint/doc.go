// Package checkpoint implements the ML-CSR checkpoint protocol: freezing
// a delta.Delta's live adjacency into a new, immutable csrlevel.Level,
// publishing it atomically onto an mlcsr.Store, and clearing the delta
// for the next ingestion window.
package checkpoint
