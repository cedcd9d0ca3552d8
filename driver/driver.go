package driver

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/graphline/delta"
	"github.com/katalvlaran/graphline/ingest"
	"github.com/katalvlaran/graphline/mlcsr"
)

// Driver coordinates one Ingester/Analyst goroutine pair against a shared
// writable delta and primary store.
type Driver struct {
	cfg Config

	w *delta.Delta
	m *mlcsr.Store
	ds ingest.DataSource

	runID uuid.UUID
	clock atomic.Int64

	terminate atomic.Bool

	advances atomic.Int64
}

// New constructs a Driver over w/m/ds. w and m must be freshly paired
// (the same Delta/Store a checkpoint.Run call would otherwise be wired
// to by hand).
func New(w *delta.Delta, m *mlcsr.Store, ds ingest.DataSource, cfg Config) *Driver {
	return &Driver{
		cfg: cfg,
		w: w,
		m: m,
		ds: ds,
		runID: uuid.New(),
	}
}

// RunID returns the uuid.UUID attached to every log line this Driver
// instance emits. The Prometheus collectors carry no run-ID label.
func (d *Driver) RunID() uuid.UUID { return d.runID }

// Terminate requests a graceful stop. Both workers check this flag only
// at batch/advance boundaries: no operation is interrupted mid-batch.
func (d *Driver) Terminate() { d.terminate.Store(true) }

func (d *Driver) terminated() bool { return d.terminate.Load() }

func (d *Driver) nextTimestamp() int64 { return d.clock.Add(1) }

// backlog sums the backlog of every stripe that reports a length,
// ignoring any that don't implement it.
func (d *Driver) backlog() int {
	total := 0
	for _, s := range d.cfg.Stripes {
		if l, ok := s.(interface{ Len() int }); ok {
			total += l.Len()
		}
	}
	return total
}

func (d *Driver) ictx() ingest.Context {
	return ingest.Context{NowTimestamp: d.nextTimestamp(), SessionID: d.runID}
}

// Run launches the Ingester and Analyst and blocks until either returns a
// fatal error, ctx is cancelled, or (with Config.MaxAdvances > 0) the
// configured number of checkpoints has completed. Either worker's fatal
// error cancels the other via the shared errgroup context.
func (d *Driver) Run(ctx context.Context) error {
	logger := d.cfg.Logger.With().Str("run_id", d.runID.String()).Str("mode", d.cfg.Mode.String()).Logger()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.runIngester(gctx, logger) })
	g.Go(func() error { return d.runAnalyst(gctx, logger) })
	return g.Wait()
}
