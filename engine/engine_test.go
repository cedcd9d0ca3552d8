package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphline/loader"
	"github.com/katalvlaran/graphline/mlcsr"
)

func validConfig() Config {
	return Config{
		MaxNodes: 16,
		MaxEdgesPerPull: 32,
		AdvanceIntervalMillis: 50,
	}
}

func TestNewRejectsMissingMaxEdgesPerPull(t *testing.T) {
	cfg := validConfig()
	cfg.MaxEdgesPerPull = 0
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRejectsMismatchedPartialLoad(t *testing.T) {
	cfg := validConfig()
	cfg.PartialLoadPart = 1
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRejectsOutOfRangePartialLoadPart(t *testing.T) {
	cfg := validConfig()
	cfg.PartialLoadPart = 3
	cfg.PartialLoadNumParts = 2
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewBuildsStoreAndReverseTwin(t *testing.T) {
	cfg := validConfig()
	cfg.ReverseEdges = true
	e, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, e.Store)
	require.NotNil(t, e.Store.Reverse)
	require.Equal(t, mlcsr.NodeID(16), e.Store.MaxNodes())
}

func TestCheckpointOptionsWeightPropertyOnlyWhenDeduplicating(t *testing.T) {
	cfg := validConfig()
	cfg.Deduplicate = true
	e, err := New(cfg)
	require.NoError(t, err)

	opt := e.CheckpointOptions(nil)
	require.True(t, opt.Deduplicate)
	require.Equal(t, "weight", opt.WeightProperty)

	cfg.NoProperties = true
	e2, err := New(cfg)
	require.NoError(t, err)
	opt2 := e2.CheckpointOptions(nil)
	require.Empty(t, opt2.WeightProperty)
}

func TestNewDriverWrapsUndirectedDouble(t *testing.T) {
	cfg := validConfig()
	cfg.Direction = UndirectedDouble
	e, err := New(cfg)
	require.NoError(t, err)

	ds := loader.NewSliceSource([]loader.Edge{{Tail: 0, Head: 1}}, false)
	wrapped := e.wrapDirection(ds)
	_, ok := wrapped.(*loader.DirectionSource)
	require.True(t, ok)
}

func TestNewDriverLeavesDirectedUnwrapped(t *testing.T) {
	cfg := validConfig()
	e, err := New(cfg)
	require.NoError(t, err)

	ds := loader.NewSliceSource([]loader.Edge{{Tail: 0, Head: 1}}, false)
	wrapped := e.wrapDirection(ds)
	require.Same(t, ds, wrapped)
}
