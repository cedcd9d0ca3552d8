package csrlevel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithCompressionRoundTripsNeighbors(t *testing.T) {
	sb := NewFromSortedStream(2)
	require.NoError(t, sb.PushAdjacency(0, []NodeID{10, 11, 20, 1000}))
	level, err := sb.Finish()
	require.NoError(t, err)

	require.NoError(t, level.WithCompression())
	require.Equal(t, []NodeID{10, 11, 20, 1000}, level.Neighbors(0, nil))
	require.Equal(t, 4, level.Degree(0))

	idx, ok := level.Find(0, 20, nil)
	require.True(t, ok)
	require.Equal(t, 2, idx)
}

func TestWithCompressionRejectsUnsortedLevel(t *testing.T) {
	b := NewFromDegrees(1, []uint32{2})
	s, _ := b.AdjacencySlice(0)
	copy(s, []NodeID{5, 3})
	level, err := b.Finish(false)
	require.NoError(t, err)

	require.ErrorIs(t, level.WithCompression(), ErrOutOfOrder)
}
