// Package csrlevel implements the immutable, cache-friendly adjacency store
// for a single snapshot of a multi-versioned graph: a compressed sparse row
// (CSR) pair of a vertex table and an edge table.
//
// A Level is built once, by one of two constructors, and not mutated
// afterward except by an explicit WithCompression call, which must happen
// before the Level is shared with readers:
//
// - NewFromDegrees — caller supplies a precomputed per-vertex degree
// array; the Builder computes the vertex table as a prefix sum and
// hands back adjacency slices for the caller to fill in.
// - NewFromSortedStream — caller feeds (tail, head) pairs already sorted
// by tail; the StreamBuilder materializes both tables in one pass.
//
// Once frozen, a *Level is safe for unsynchronized concurrent reads from
// any number of goroutines: Degree, Neighbors, Find, and Iter never take a
// lock. On an uncompressed level they never allocate; on a compressed
// level, decoding a vertex's block allocates.
package csrlevel
