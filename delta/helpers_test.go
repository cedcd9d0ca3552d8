package delta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphline/csrlevel"
	"github.com/katalvlaran/graphline/mlcsr"
)

// publishSingleEdge freezes a one-edge level tail->head and publishes it
// into store, for tests that need a pre-existing frozen edge to delete.
func publishSingleEdge(t *testing.T, store *mlcsr.Store, tail, head NodeID) {
	t.Helper()
	sb := csrlevel.NewFromSortedStream(store.MaxNodes())
	require.NoError(t, sb.PushAdjacency(csrlevel.NodeID(tail), []csrlevel.NodeID{csrlevel.NodeID(head)}))
	level, err := sb.Finish()
	require.NoError(t, err)
	store.Publish(level)
}
