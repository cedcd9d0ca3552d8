package driver

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/graphline/checkpoint"
)

// runAnalyst triggers a checkpoint every Config.AdvanceInterval, then
// invokes Config.OnAdvance against the freshly published snapshot, then
// sleeps until the next tick.
func (d *Driver) runAnalyst(ctx context.Context, logger zerolog.Logger) error {
	if d.cfg.AdvanceInterval <= 0 {
		return nil
	}

	next := time.Now().Add(d.cfg.AdvanceInterval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
		}
		if d.terminated() {
			return nil
		}

		if d.backlog() > d.cfg.DrainThreshold {
			if err := d.drainStripes(d.ictx()); err != nil {
				return err
			}
		}

		start := time.Now()
		stats, err := checkpoint.Run(ctx, d.ictx(), d.w, d.m, d.cfg.CheckpointOptions)
		if err != nil {
			return err
		}
		if d.cfg.Metrics != nil {
			d.cfg.Metrics.CheckpointDuration.Observe(time.Since(start).Seconds())
			d.cfg.Metrics.LevelsTotal.Set(float64(d.m.NumLevels()))
		}
		logger.Debug().
			Int("new_edges", stats.NewEdges).
			Int("level_index", stats.LevelIndex).
			Msg("checkpoint complete")

		if d.cfg.OnAdvance != nil && d.m.NumLevels() > 0 {
			borrow, release, err := d.m.BorrowAt(d.m.NumLevels() - 1)
			if err == nil {
				d.cfg.OnAdvance(borrow)
				release()
			}
		}

		if d.cfg.MaxAdvances > 0 && d.advances.Add(1) >= int64(d.cfg.MaxAdvances) {
			d.Terminate()
			return nil
		}

		now := time.Now()
		if behind := now.Sub(next); behind > 0 && d.cfg.Metrics != nil {
			d.cfg.Metrics.IngestBehind.Observe(behind.Seconds())
		}
		next = next.Add(d.cfg.AdvanceInterval)
		if next.Before(now) {
			next = now
		}
	}
}
