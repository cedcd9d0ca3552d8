package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphline/ingest"
)

func drainSource(t *testing.T, ds ingest.DataSource, maxEdges int) []Edge {
	t.Helper()
	var out []Edge
	for {
		more, err := ds.Pull(context.Background(), maxEdges)
		require.NoError(t, err)
		for {
			tail, head, weight, ok := ds.NextEdge()
			if !ok {
				break
			}
			out = append(out, Edge{Tail: tail, Head: head, Weight: weight})
		}
		if !more {
			break
		}
	}
	return out
}

func TestSliceSourcePullsInOrderAcrossBatches(t *testing.T) {
	edges := []Edge{{Tail: 0, Head: 1}, {Tail: 1, Head: 2}, {Tail: 2, Head: 3}}
	s := NewSliceSource(edges, false)
	got := drainSource(t, s, 2)
	require.Equal(t, edges, got)
	require.False(t, s.Weighted())
}

func TestSliceSourceRewindReplays(t *testing.T) {
	edges := []Edge{{Tail: 0, Head: 1}}
	s := NewSliceSource(edges, false)
	first := drainSource(t, s, 10)
	require.NoError(t, s.Rewind())
	second := drainSource(t, s, 10)
	require.Equal(t, first, second)
}

func TestPlainEdgeListSkipsCommentsAndBlankLines(t *testing.T) {
	r := strings.NewReader("# comment\n0 1\n\n1 2\n")
	p := NewPlainEdgeList(r)
	got := drainSource(t, p, 10)
	require.Equal(t, []Edge{{Tail: 0, Head: 1}, {Tail: 1, Head: 2}}, got)
	require.False(t, p.Weighted())
}

func TestPlainEdgeListAbandonsPastMaxParseErrors(t *testing.T) {
	r := strings.NewReader("bad line\nanother bad\n0 1\n")
	p := NewPlainEdgeList(r, WithMaxParseErrors(1))
	_, err := p.Pull(context.Background(), 10)
	require.ErrorIs(t, err, ErrTooManyParseErrors)
}

func TestByteRangeSplitsEvenly(t *testing.T) {
	start, end, err := ByteRange(100, 2, 4)
	require.NoError(t, err)
	require.Equal(t, int64(25), start)
	require.Equal(t, int64(50), end)
}

func TestByteRangeRejectsOutOfRangePart(t *testing.T) {
	_, _, err := ByteRange(100, 5, 4)
	require.ErrorIs(t, err, ErrInvalidPartialLoad)
}

func TestDirectionSourceDoubleEmitsBothDirections(t *testing.T) {
	base := NewSliceSource([]Edge{{Tail: 0, Head: 1}, {Tail: 1, Head: 2}}, false)
	ds := NewDirectionSource(base, DirectionDouble)
	got := drainSource(t, ds, 10)
	require.Equal(t, []Edge{
		{Tail: 0, Head: 1},
		{Tail: 1, Head: 0},
		{Tail: 1, Head: 2},
		{Tail: 2, Head: 1},
	}, got)
}

func TestDirectionSourceOrderedCanonicalizes(t *testing.T) {
	base := NewSliceSource([]Edge{{Tail: 5, Head: 2}, {Tail: 1, Head: 3}}, false)
	ds := NewDirectionSource(base, DirectionOrdered)
	got := drainSource(t, ds, 10)
	require.Equal(t, []Edge{{Tail: 2, Head: 5}, {Tail: 1, Head: 3}}, got)
}
