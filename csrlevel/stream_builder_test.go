package csrlevel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamBuilderRoundTripsSortedAdjacency(t *testing.T) {
	// Insert [(0,1),(1,2),(0,2)] — after sorting by (tail,head) this is
	// (0,{1,2}), (1,{2}); out_iter(0) yields {1,2}, out_iter(1) yields {2}.
	sb := NewFromSortedStream(3)
	require.NoError(t, sb.PushAdjacency(0, []NodeID{1, 2}))
	require.NoError(t, sb.PushAdjacency(1, []NodeID{2}))
	level, err := sb.Finish()
	require.NoError(t, err)
	require.NoError(t, level.Validate())

	require.Equal(t, []NodeID{1, 2}, level.Neighbors(0, nil))
	require.Equal(t, []NodeID{2}, level.Neighbors(1, nil))
	require.Equal(t, 0, level.Degree(2))

	idx, ok := level.Find(0, 2, nil)
	require.True(t, ok)
	require.Equal(t, 1, idx, "find(0,2) lands at index 1 in sorted-by-head layout")
}

func TestStreamBuilderRejectsOutOfOrderTail(t *testing.T) {
	sb := NewFromSortedStream(3)
	require.NoError(t, sb.PushAdjacency(1, []NodeID{0}))
	require.ErrorIs(t, sb.PushAdjacency(0, []NodeID{1}), ErrOutOfOrder)
}

func TestStreamBuilderRejectsOutOfOrderHead(t *testing.T) {
	sb := NewFromSortedStream(2)
	require.ErrorIs(t, sb.PushAdjacency(0, []NodeID{2, 1}), ErrOutOfOrder)
}

func TestStreamBuilderSkipsUnpushedVertices(t *testing.T) {
	sb := NewFromSortedStream(4)
	require.NoError(t, sb.PushAdjacency(2, []NodeID{3}))
	level, err := sb.Finish()
	require.NoError(t, err)
	require.NoError(t, level.Validate())

	require.Equal(t, 0, level.Degree(0))
	require.Equal(t, 0, level.Degree(1))
	require.Equal(t, 1, level.Degree(2))
	require.Equal(t, 0, level.Degree(3))
}
