// Package mlcsr implements the multi-level CSR store: an ordered stack of
// immutable csrlevel.Level values, a max-visible-level watermark map used
// for logical edge deletion across levels, per-level edge-property
// columns, and an optional reverse-direction twin.
//
// Store is the read side of the engine. The level stack and its overlays
// change through Publish and KeepOnlyRecentVersions (called by package
// checkpoint), UpdateMaxVisibleLevelLowerOnly (called by package delta on
// edge/node deletion), SetMaxNodes, BorrowAt, DeclareProperty and
// AppendPropertyLevel, each under a short-lived write lock; the query
// methods take at most a short-lived lock.
package mlcsr
