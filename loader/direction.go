package loader

import (
	"context"

	"github.com/katalvlaran/graphline/ingest"
)

// DirectionMode selects how a DirectionSource transforms the edges it
// reads from an underlying DataSource, per `direction` field.
type DirectionMode int

const (
	// DirectionAsIs passes tail/head through unchanged ("directed").
	DirectionAsIs DirectionMode = iota
	// DirectionDouble emits both (tail,head) and (head,tail) for every
	// upstream edge ("undirected_double").
	DirectionDouble
	// DirectionOrdered canonicalizes every edge so tail <= head
	// ("undirected_ordered").
	DirectionOrdered
)

// DirectionSource wraps an ingest.DataSource and applies a DirectionMode
// to every edge it yields. Only Pull/NextEdge/Weighted are forwarded —
// StatSource/RewindSource are not promoted through the wrapper, since
// DirectionDouble changes the edge count Stat would report.
type DirectionSource struct {
	upstream ingest.DataSource
	mode DirectionMode

	hasPending bool
	pendingTail ingest.NodeID
	pendingHead ingest.NodeID
	pendingWeight float32
}

// NewDirectionSource returns a DataSource that applies mode to upstream's
// edges.
func NewDirectionSource(upstream ingest.DataSource, mode DirectionMode) *DirectionSource {
	return &DirectionSource{upstream: upstream, mode: mode}
}

// Pull implements ingest.DataSource, delegating directly to upstream.
func (d *DirectionSource) Pull(ctx context.Context, maxEdges int) (bool, error) {
	return d.upstream.Pull(ctx, maxEdges)
}

// Weighted implements ingest.DataSource, delegating directly to upstream.
func (d *DirectionSource) Weighted() bool {
	return d.upstream.Weighted()
}

// NextEdge implements ingest.DataSource, applying this source's
// DirectionMode. DirectionDouble buffers the reverse edge and emits it on
// the following call: an undirected_double source over [(0,1),(1,2)]
// yields a level with an edge table of length 4.
func (d *DirectionSource) NextEdge() (tail, head ingest.NodeID, weight float32, ok bool) {
	if d.hasPending {
		d.hasPending = false
		return d.pendingTail, d.pendingHead, d.pendingWeight, true
	}

	tail, head, weight, ok = d.upstream.NextEdge()
	if !ok {
		return 0, 0, 0, false
	}

	switch d.mode {
	case DirectionOrdered:
		if tail > head {
			tail, head = head, tail
		}
		return tail, head, weight, true
	case DirectionDouble:
		d.pendingTail, d.pendingHead, d.pendingWeight = head, tail, weight
		d.hasPending = true
		return tail, head, weight, true
	default:
		return tail, head, weight, true
	}
}
