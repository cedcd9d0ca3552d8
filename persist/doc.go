// Package persist memory-maps level arrays to disk, optional and strictly
// secondary to the in-memory core: durable persistence is not a core
// guarantee. A Store writes/reads a single published Level's VertexTable
// and EdgeTable as flat files, plus a small CBOR-encoded manifest
// recording level metadata and property-column widths.
package persist
