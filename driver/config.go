package driver

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphline/checkpoint"
	"github.com/katalvlaran/graphline/metrics"
	"github.com/katalvlaran/graphline/mlcsr"
)

// Config configures one Driver run.
type Config struct {
	// Mode selects the window mechanics variant.
	Mode Mode

	// BatchSize draws the ingester's per-pull edge count. A nil value
	// defaults to Uniform{Min: 64, Max: 256}.
	BatchSize BatchSizer

	// AdvanceInterval is the Analyst's wall-clock tick.
	AdvanceInterval time.Duration

	// TargetBatchInterval, when non-zero, paces the Ingester: after each
	// batch it sleeps any surplus time to hit this interval, or reports
	// Behind via metrics.IngestBehind when running late. Zero disables
	// pacing.
	TargetBatchInterval time.Duration

	// DrainThreshold is the backlog size past which the Analyst drains
	// its RequestQueue stripes before checkpointing.
	DrainThreshold int

	// MaxAdvances stops Run after this many completed Analyst ticks when
	// > 0. Zero means run until ctx is cancelled.
	MaxAdvances int

	// OnAdvance is invoked after every successful checkpoint, holding a
	// Borrow pinned to the level just published: analytics observes a
	// fixed level, never a moving target.
	OnAdvance func(mlcsr.Borrow)

	// Stripes are the RequestQueue shards the Ingester drains between
	// batches. Nil/empty means no request-queue traffic.
	Stripes []Stripe

	// CheckpointOptions configures the checkpoint.Run call the Analyst
	// makes every tick.
	CheckpointOptions checkpoint.Options

	// Metrics receives the Driver's Prometheus instrumentation. Nil
	// disables metrics recording.
	Metrics *metrics.Collectors

	// Logger is the structured logger used by both workers. The zero
	// value is a disabled logger that writes nothing.
	Logger zerolog.Logger
}

func (c Config) batchSizer() BatchSizer {
	if c.BatchSize != nil {
		return c.BatchSize
	}
	return Uniform{Min: 64, Max: 256}
}
