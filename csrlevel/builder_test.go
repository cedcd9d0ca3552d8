package csrlevel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFromDegreesPrefixSumAndAdjacency(t *testing.T) {
	// neighbors(0)={1,2}, neighbors(1)={2}, neighbors(2)={}
	degrees := []uint32{2, 1, 0}
	b := NewFromDegrees(3, degrees)

	s0, err := b.AdjacencySlice(0)
	require.NoError(t, err)
	copy(s0, []NodeID{1, 2})

	s1, err := b.AdjacencySlice(1)
	require.NoError(t, err)
	copy(s1, []NodeID{2})

	level, err := b.Finish(true)
	require.NoError(t, err)
	require.NoError(t, level.Validate())

	require.Equal(t, 2, level.Degree(0))
	require.Equal(t, 1, level.Degree(1))
	require.Equal(t, 0, level.Degree(2))
	require.Equal(t, []NodeID{1, 2}, level.Neighbors(0, nil))
	require.Equal(t, []NodeID{2}, level.Neighbors(1, nil))

	idx, ok := level.Find(0, 2, nil)
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = level.Find(1, 9, nil)
	require.False(t, ok)
}

func TestAdjacencySliceOutOfRange(t *testing.T) {
	b := NewFromDegrees(2, []uint32{0, 0})
	_, err := b.AdjacencySlice(5)
	require.ErrorIs(t, err, ErrVertexOutOfRange)
}

func TestFinishTwiceFails(t *testing.T) {
	b := NewFromDegrees(1, []uint32{0})
	_, err := b.Finish(true)
	require.NoError(t, err)
	_, err = b.Finish(true)
	require.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestIteratorYieldsEveryNeighborThenDrains(t *testing.T) {
	b := NewFromDegrees(1, []uint32{3})
	s, _ := b.AdjacencySlice(0)
	copy(s, []NodeID{4, 5, 6})
	level, err := b.Finish(true)
	require.NoError(t, err)

	it := level.Iter(0, nil)
	var got []NodeID
	for {
		n, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, n)
	}
	require.Equal(t, []NodeID{4, 5, 6}, got)
	require.Equal(t, 0, it.Remaining())
}
