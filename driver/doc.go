// Package driver coordinates continuous ingest and periodic checkpoints at
// a target wall-clock rate: an Ingester goroutine pulls batches from a
// DataSource into a delta.Delta, while an Analyst goroutine triggers
// checkpoint.Run on a fixed interval and hands the freshly published
// snapshot to a caller-supplied analytics callback.
package driver
