// Package metrics exposes the Prometheus collectors shared by driver,
// checkpoint, and xms: checkpoint duration, published level count, how
// far behind schedule the ingester is running, and external-merge-sort
// spill activity.
package metrics
