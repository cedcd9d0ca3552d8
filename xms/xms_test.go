package xms

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	Tail, Head uint32
}

func pairLess(a, b pair) bool {
	if a.Tail != b.Tail {
		return a.Tail < b.Tail
	}
	return a.Head < b.Head
}

func TestSortYieldsNonDecreasingByTailHead(t *testing.T) {
	s := New(pairLess, NewConfig())
	input := []pair{{3, 9}, {1, 5}, {3, 2}, {1, 7}}
	for _, p := range input {
		require.NoError(t, s.Push(p))
	}
	require.NoError(t, s.Sort(context.Background()))

	out := make([]pair, 4)
	n, more, err := s.NextBlock(out)
	require.NoError(t, err)
	require.False(t, more)
	require.Equal(t, 4, n)
	require.Equal(t, []pair{{1, 5}, {1, 7}, {3, 2}, {3, 9}}, out)
}

// TestSortForcesSpillAndMerges exercises the multi-run disk path by
// clamping the buffer to its 256-record floor, so the 2000 pushes spill
// several runs.
func TestSortForcesSpillAndMerges(t *testing.T) {
	cfg := NewConfig(WithMemoryBudgetBytes(minMemoryBudgetBytes), WithRecordSizeBytes(minMemoryBudgetBytes/4))
	s := New(pairLess, cfg)

	rng := rand.New(rand.NewSource(7))
	const n = 2000
	input := make([]pair, n)
	for i := range input {
		input[i] = pair{Tail: uint32(rng.Intn(50)), Head: uint32(rng.Intn(50))}
		require.NoError(t, s.Push(input[i]))
	}
	require.NoError(t, s.Sort(context.Background()))

	got := drainAll(t, s, n)
	require.Len(t, got, n)
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return pairLess(got[i], got[j]) }))
	requirePermutation(t, input, got)
}

// TestRewindSortedReplaysFromStart verifies RewindSorted on the in-memory
// fast path (three records, no spill).
func TestRewindSortedReplaysFromStart(t *testing.T) {
	s := New(pairLess, NewConfig())
	for _, p := range []pair{{2, 0}, {0, 1}, {1, 0}} {
		require.NoError(t, s.Push(p))
	}
	require.NoError(t, s.Sort(context.Background()))

	first := drainAll(t, s, 3)
	require.NoError(t, s.RewindSorted())
	second := drainAll(t, s, 3)
	require.Equal(t, first, second)
}

// TestNextBlockBeforeSortErrors checks the documented precondition.
func TestNextBlockBeforeSortErrors(t *testing.T) {
	s := New(pairLess, NewConfig())
	_, _, err := s.NextBlock(make([]pair, 1))
	require.ErrorIs(t, err, ErrNotSorted)
}

// TestClearResetsForReuse checks a Sorter can be pushed into again after Clear.
func TestClearResetsForReuse(t *testing.T) {
	s := New(pairLess, NewConfig())
	require.NoError(t, s.Push(pair{1, 1}))
	require.NoError(t, s.Sort(context.Background()))
	require.NoError(t, s.Clear())

	require.NoError(t, s.Push(pair{9, 9}))
	require.NoError(t, s.Sort(context.Background()))
	got := drainAll(t, s, 1)
	require.Equal(t, []pair{{9, 9}}, got)
}

// TestOnSpillFiresPerRun checks the spill hook counts one call per
// forced spill, not per Push.
func TestOnSpillFiresPerRun(t *testing.T) {
	spills := 0
	cfg := NewConfig(WithMemoryBudgetBytes(minMemoryBudgetBytes), WithRecordSizeBytes(minMemoryBudgetBytes/4))
	cfg.OnSpill = func() { spills++ }
	s := New(pairLess, cfg)

	for i := 0; i < minBufferRecords*3; i++ {
		require.NoError(t, s.Push(pair{Tail: uint32(i), Head: uint32(i)}))
	}
	require.NoError(t, s.Sort(context.Background()))
	require.GreaterOrEqual(t, spills, 2)
}

func drainAll(t *testing.T, s *Sorter[pair], total int) []pair {
	t.Helper()
	out := make([]pair, 0, total)
	buf := make([]pair, 7) // deliberately not a divisor of total
	for {
		n, more, err := s.NextBlock(buf)
		require.NoError(t, err)
		out = append(out, buf[:n]...)
		if !more {
			break
		}
	}
	return out
}

func requirePermutation(t *testing.T, want, got []pair) {
	t.Helper()
	wantSorted := append([]pair(nil), want...)
	gotSorted := append([]pair(nil), got...)
	sort.Slice(wantSorted, func(i, j int) bool { return pairLess(wantSorted[i], wantSorted[j]) })
	sort.Slice(gotSorted, func(i, j int) bool { return pairLess(gotSorted[i], gotSorted[j]) })
	require.Equal(t, wantSorted, gotSorted)
}
