package persist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/graphline/csrlevel"
	"github.com/katalvlaran/graphline/mlcsr"
)

func buildTestLevel(t *testing.T) *csrlevel.Level {
	t.Helper()
	b := csrlevel.NewFromDegrees(3, []uint32{2, 1, 0})
	s0, err := b.AdjacencySlice(0)
	require.NoError(t, err)
	copy(s0, []csrlevel.NodeID{1, 2})
	s1, err := b.AdjacencySlice(1)
	require.NoError(t, err)
	copy(s1, []csrlevel.NodeID{2})
	level, err := b.Finish(true)
	require.NoError(t, err)
	return level
}

func TestStoreWriteReadLevelRoundTrips(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	level := buildTestLevel(t)
	props := map[string]mlcsr.Column{
		"weight": {U32: []uint32{10, 20, 30}},
	}
	require.NoError(t, store.WriteLevel(0, level, props))

	got, manifest, release, err := store.ReadLevel(0)
	require.NoError(t, err)
	defer release()

	require.Equal(t, level.VertexTable, got.VertexTable)
	require.Equal(t, level.EdgeTable, got.EdgeTable)
	require.True(t, got.Sorted)
	require.Equal(t, 0, manifest.LevelIndex)
	require.Equal(t, PropertyWidthU32, manifest.Properties["weight"])

	col, colRelease, err := store.ReadProperty(0, "weight", PropertyWidthU32)
	require.NoError(t, err)
	defer colRelease()
	require.Equal(t, []uint32{10, 20, 30}, col.U32)
}

func TestReadLevelMissingManifestErrors(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	_, _, _, err = store.ReadLevel(7)
	require.Error(t, err)
}
