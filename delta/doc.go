// Package delta implements the writable delta layer: the
// staging area that absorbs single-edge insertions and deletions between
// checkpoints. A Delta buffers, per touched node, an arena-indexed list of
// pending out-edges and a parallel in-list of back-references, guarded by
// a per-node lock so concurrent callers touching different vertices don't
// contend.
//
// Edges allocated here carry an EdgeID tagged mlcsr.WritableLevel until
// package checkpoint promotes them into a frozen csrlevel.Level; the arena
// backing them is freed only at checkpoint boundaries, never per-edge.
package delta
