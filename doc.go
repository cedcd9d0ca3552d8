// Package graphline is a multi-level CSR graph storage engine: a single
// ingest thread mutates a writable delta while concurrent readers walk
// immutable, periodically checkpointed CSR levels.
//
// Subpackages:
//
//	csrlevel/ — immutable CSR Level: vertex table, edge table, binary search
//	mlcsr/ — Store: the ordered stack of Levels, deletion overlay, properties
//	delta/ — writable delta (W): pending mutations not yet checkpointed
//	checkpoint/ — merges W into a new Level and publishes it atomically
//	xms/ — external merge sort that orders a new Level's (tail, head) pairs
//	driver/ — Ingester/Analyst goroutine pair coordinating W and Store
//	engine/ — validated configuration and wiring for the above
//	loader/ — minimal DataSource implementations (plain edge list, slices)
//	persist/ — optional mmap-backed persistence for level arrays
//	metrics/ — Prometheus instrumentation
//	ingest/ — the DataSource/Context seam shared by driver, checkpoint, loader
//	cmd/graphd/ — a thin CLI wrapping engine/driver
package graphline
