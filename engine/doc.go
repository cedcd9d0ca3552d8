// Package engine is the top-level facade: a validated Config, the
// DataSource/Context contract re-exported from package ingest, and New,
// which wires a Store, Delta, and (optionally) a reverse twin together
// into an Engine ready to back a driver.Driver.
package engine
