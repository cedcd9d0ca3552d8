package loader

import (
	"context"

	"github.com/katalvlaran/graphline/ingest"
)

// Edge is one input record: a directed tail->head pair plus an optional
// weight, meaningful only when Weighted reports true.
type Edge struct {
	Tail, Head ingest.NodeID
	Weight float32
}

// SliceSource is a []Edge-backed ingest.DataSource, for tests and demos.
type SliceSource struct {
	edges []Edge
	weighted bool

	cursor int
	batchPos int
	batchEnd int
}

// NewSliceSource wraps edges for sequential Pull/NextEdge consumption.
func NewSliceSource(edges []Edge, weighted bool) *SliceSource {
	return &SliceSource{edges: edges, weighted: weighted}
}

// Pull implements ingest.DataSource.
func (s *SliceSource) Pull(ctx context.Context, maxEdges int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s.cursor >= len(s.edges) {
		s.batchPos, s.batchEnd = 0, 0
		return false, nil
	}
	end := s.cursor + maxEdges
	if end > len(s.edges) {
		end = len(s.edges)
	}
	s.batchPos = s.cursor
	s.batchEnd = end
	s.cursor = end
	return true, nil
}

// NextEdge implements ingest.DataSource.
func (s *SliceSource) NextEdge() (tail, head ingest.NodeID, weight float32, ok bool) {
	if s.batchPos >= s.batchEnd {
		return 0, 0, 0, false
	}
	e := s.edges[s.batchPos]
	s.batchPos++
	return e.Tail, e.Head, e.Weight, true
}

// Weighted implements ingest.DataSource.
func (s *SliceSource) Weighted() bool { return s.weighted }

// Stat implements ingest.StatSource.
func (s *SliceSource) Stat() (vertices, edges int64, ok bool) {
	return -1, int64(len(s.edges)), true
}

// Rewind implements ingest.RewindSource.
func (s *SliceSource) Rewind() error {
	s.cursor, s.batchPos, s.batchEnd = 0, 0, 0
	return nil
}
