package driver

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphline/checkpoint"
	"github.com/katalvlaran/graphline/delta"
	"github.com/katalvlaran/graphline/mlcsr"
)

// infiniteSource hands out edges from vertex 0 forever, cycling the head
// through 1..5, so the Ingester always
// has something to do regardless of how many batches the Analyst races
// against.
type infiniteSource struct {
	n int
	next mlcsr.NodeID
}

func (s *infiniteSource) Pull(ctx context.Context, maxEdges int) (bool, error) {
	s.n = maxEdges
	return true, nil
}

func (s *infiniteSource) NextEdge() (tail, head mlcsr.NodeID, weight float32, ok bool) {
	if s.n <= 0 {
		return 0, 0, 0, false
	}
	s.n--
	s.next++
	return 0, s.next%5 + 1, 0, true
}

func (s *infiniteSource) Weighted() bool { return false }

func TestDriverRunsExactlyMaxAdvances(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(8)
	ds := &infiniteSource{}

	var computeCalls atomic.Int64
	cfg := Config{
		Mode: ModeDeltaCheckpoint,
		BatchSize: Uniform{Min: 4, Max: 8},
		AdvanceInterval: 100 * time.Millisecond,
		MaxAdvances: 3,
		CheckpointOptions: checkpoint.Options{
			SortAdjacency: true,
		},
		OnAdvance: func(b mlcsr.Borrow) {
			computeCalls.Add(1)
		},
	}

	drv := New(w, m, ds, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := drv.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), computeCalls.Load())
	require.Equal(t, 3, m.NumLevels())
}

func TestDriverTerminateStopsIngester(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(4)
	ds := &infiniteSource{}

	cfg := Config{
		AdvanceInterval: 20 * time.Millisecond,
		MaxAdvances: 1,
	}
	drv := New(w, m, ds, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := drv.Run(ctx)
	require.NoError(t, err)
	require.True(t, drv.terminated())
}
