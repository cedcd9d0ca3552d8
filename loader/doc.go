// Package loader provides minimal ingest.DataSource implementations:
// SliceSource for tests, and PlainEdgeList, a reader for the SNAP-style
// plain edge list format. Binary .dat/.xs1 and .fgf formats are out of
// scope.
package loader
