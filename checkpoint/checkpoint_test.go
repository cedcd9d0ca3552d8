package checkpoint

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphline/delta"
	"github.com/katalvlaran/graphline/ingest"
	"github.com/katalvlaran/graphline/mlcsr"
)

func ictx() ingest.Context {
	return ingest.Context{NowTimestamp: 1, SessionID: uuid.New()}
}

func collectOut(t *testing.T, m *mlcsr.Store, v mlcsr.NodeID) []mlcsr.NodeID {
	t.Helper()
	it := m.OutIter(v, m.NumLevels()-1)
	var got []mlcsr.NodeID
	for {
		nbr, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, nbr)
	}
	return got
}

func TestRunPromotesLiveAdjacency(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(3)
	w.AddEdge(ictx(), 0, 1)
	w.AddEdge(ictx(), 1, 2)
	w.AddEdge(ictx(), 0, 2)

	stats, err := Run(context.Background(), ictx(), w, m, Options{SortAdjacency: true})
	require.NoError(t, err)
	require.Equal(t, 3, stats.NewEdges)
	require.Equal(t, 0, stats.LevelIndex)
	require.Equal(t, 1, m.NumLevels())

	require.ElementsMatch(t, []mlcsr.NodeID{1, 2}, collectOut(t, m, 0))
	require.ElementsMatch(t, []mlcsr.NodeID{2}, collectOut(t, m, 1))

	e, ok := m.Find(0, 2)
	require.True(t, ok)
	require.Equal(t, 0, e.Level)

	require.Empty(t, w.TouchedNodes(), "Run must clear w")
}

func TestRunNoOpWhenNothingTouched(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(3)

	stats, err := Run(context.Background(), ictx(), w, m, Options{})
	require.NoError(t, err)
	require.Equal(t, Stats{}, stats)
	require.Equal(t, 0, m.NumLevels())
}

func TestRunDeduplicatesWithinLevel(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(3)
	w.AddEdge(ictx(), 0, 1)
	w.AddEdge(ictx(), 0, 1) // duplicate, later occurrence
	w.AddEdge(ictx(), 0, 2)

	stats, err := Run(context.Background(), ictx(), w, m, Options{Deduplicate: true})
	require.NoError(t, err)
	require.Equal(t, 1, stats.DroppedDupes)
	require.ElementsMatch(t, []mlcsr.NodeID{1, 2}, collectOut(t, m, 0))
}

func TestRunAccumulatesWeightOnDuplicate(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(2)
	w.AddEdge(ictx(), 0, 1)
	w.AddEdge(ictx(), 0, 1)
	w.AddEdge(ictx(), 0, 1)

	_, err := Run(context.Background(), ictx(), w, m, Options{Deduplicate: true, WeightProperty: "weight"})
	require.NoError(t, err)

	e, ok := m.Find(0, 1)
	require.True(t, ok)
	weight, ok := m.PropertyAt64("weight", e)
	require.True(t, ok)
	require.Equal(t, uint64(3), weight)
}

func TestRunBuildsReverseTwin(t *testing.T) {
	w := delta.New()
	m := mlcsr.New(3)
	m.Reverse = mlcsr.New(3)
	w.AddEdge(ictx(), 0, 2)
	w.AddEdge(ictx(), 1, 2)

	_, err := Run(context.Background(), ictx(), w, m, Options{SortAdjacency: true})
	require.NoError(t, err)
	require.Equal(t, 1, m.Reverse.NumLevels())
	require.ElementsMatch(t, []mlcsr.NodeID{0, 1}, collectOut(t, m.Reverse, 2))
}
