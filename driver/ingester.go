package driver

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphline/ingest"
)

// runIngester pulls batches from the DataSource into W until Terminate is
// set or ctx is cancelled, opportunistically draining its owned stripes
// between batches.
func (d *Driver) runIngester(ctx context.Context, logger zerolog.Logger) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sizer := d.cfg.batchSizer()

	var nextTick time.Time
	if d.cfg.TargetBatchInterval > 0 {
		nextTick = time.Now().Add(d.cfg.TargetBatchInterval)
	}

	for {
		if d.terminated() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		size := sizer.Sample(rng)
		more, err := d.ds.Pull(ctx, size)
		if err != nil {
			return err
		}

		ic := d.ictx()
		for {
			tail, head, _, ok := d.ds.NextEdge()
			if !ok {
				break
			}
			d.w.AddEdge(ic, tail, head)
		}

		if err := d.drainStripes(ic); err != nil {
			return err
		}

		if d.cfg.TargetBatchInterval > 0 {
			now := time.Now()
			if deficit := nextTick.Sub(now); deficit > 0 {
				time.Sleep(deficit)
			} else if d.cfg.Metrics != nil {
				d.cfg.Metrics.IngestBehind.Observe((-deficit).Seconds())
			}
			nextTick = nextTick.Add(d.cfg.TargetBatchInterval)
		}

		if !more {
			logger.Debug().Msg("data source exhausted")
			return nil
		}
	}
}

// drainStripes applies every pending Request on every owned stripe,
// stopping on the first empty read per stripe.
func (d *Driver) drainStripes(ic ingest.Context) error {
	for _, s := range d.cfg.Stripes {
		for {
			req, ok, err := s.Dequeue()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			d.applyRequest(ic, req)
		}
	}
	return nil
}

func (d *Driver) applyRequest(ic ingest.Context, req Request) {
	switch req.Op {
	case OpAddEdge:
		d.w.AddEdge(ic, req.Src, req.Dst)
	case OpDeleteEdge:
		if e, ok := d.w.FindEdge(d.m, req.Src, req.Dst); ok {
			_ = d.w.DeleteEdge(ic, d.m, e)
		}
	case OpDeleteNode:
		d.w.DeleteNode(ic, d.m, req.Src)
	}
}
