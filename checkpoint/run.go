package checkpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/graphline/csrlevel"
	"github.com/katalvlaran/graphline/delta"
	"github.com/katalvlaran/graphline/ingest"
	"github.com/katalvlaran/graphline/mlcsr"
)

// Run freezes w's live adjacency into a new immutable Level, publishes it
// atomically onto m, and clears w for the next window. A w
// with nothing touched since the last Reset is a no-op returning a zero
// Stats.
func Run(parent context.Context, ctx ingest.Context, w *delta.Delta, m *mlcsr.Store, opt Options) (Stats, error) {
	start := time.Now()

	touched := w.TouchedNodes()
	if len(touched) == 0 {
		return Stats{}, nil
	}

	maxNodes := m.MaxNodes()
	primary, dropped, err := collectPrimary(parent, w, touched, maxNodes, opt)
	if err != nil {
		return Stats{}, err
	}

	newEdges := 0
	for _, d := range primary.degrees {
		newEdges += int(d)
	}
	if newEdges == 0 {
		w.Reset()
		return Stats{}, nil
	}

	primaryLevel, weightCol, err := buildLevel(maxNodes, primary, opt.SortAdjacency)
	if err != nil {
		return Stats{}, err
	}

	var reverseLevel *levelBuild
	if m.Reverse != nil {
		rev, err := buildReverseLevel(parent, w, touched, maxNodes, opt)
		if err != nil {
			return Stats{}, err
		}
		reverseLevel = rev
	}

	levelIdx := m.Publish(primaryLevel)
	if opt.WeightProperty != "" && weightCol != nil {
		m.DeclareProperty(opt.WeightProperty)
		m.AppendPropertyLevel(opt.WeightProperty, mlcsr.Column{U64: weightCol})
	}
	if reverseLevel != nil {
		m.Reverse.Publish(reverseLevel.level)
		if opt.WeightProperty != "" && reverseLevel.weightCol != nil {
			m.Reverse.DeclareProperty(opt.WeightProperty)
			m.Reverse.AppendPropertyLevel(opt.WeightProperty, mlcsr.Column{U64: reverseLevel.weightCol})
		}
	}

	w.Reset()

	if opt.OnPublish != nil {
		opt.OnPublish(m.MaxNodes())
	}
	if opt.RetentionLevels > 0 {
		m.KeepOnlyRecentVersions(opt.RetentionLevels)
		if m.Reverse != nil {
			m.Reverse.KeepOnlyRecentVersions(opt.RetentionLevels)
		}
	}

	return Stats{
		NewNodes: len(touched),
		NewEdges: newEdges,
		DroppedDupes: dropped,
		Duration: time.Since(start),
		LevelIndex: levelIdx,
		Timestamp: ctx.NowTimestamp,
	}, nil
}

// levelBuild bundles a just-constructed level with its weight column.
type levelBuild struct {
	level *csrlevel.Level
	weightCol []uint64
}

func buildReverseLevel(ctx context.Context, w *delta.Delta, touched []mlcsr.NodeID, maxNodes mlcsr.NodeID, opt Options) (*levelBuild, error) {
	degrees := make([]uint32, maxNodes)
	adj := make(map[uint32][]uint32)
	var weights map[mlcsr.NodeID]map[mlcsr.NodeID]uint64
	if opt.Deduplicate && opt.WeightProperty != "" {
		weights = make(map[mlcsr.NodeID]map[mlcsr.NodeID]uint64)
	}

	for _, v := range touched {
		heads := w.LiveOutNeighbors(v)
		var counts map[mlcsr.NodeID]uint64
		if opt.Deduplicate {
			heads, counts, _ = dedupePreserveFirst(heads, 0)
		}
		for _, h := range heads {
			degrees[h]++
			adj[uint32(h)] = append(adj[uint32(h)], uint32(v))
			if weights != nil {
				if weights[h] == nil {
					weights[h] = make(map[mlcsr.NodeID]uint64)
				}
				if counts != nil {
					weights[h][v] = counts[h]
				} else {
					weights[h][v] = 1
				}
			}
		}
	}

	c := collected{degrees: degrees, adj: adj, weights: weights}
	if opt.SortAdjacency {
		sortedAdj, err := sortAdjacencyGlobally(ctx, adj, opt)
		if err != nil {
			return nil, err
		}
		c.adj = sortedAdj
	}

	lvl, weightCol, err := buildLevel(maxNodes, c, opt.SortAdjacency)
	if err != nil {
		return nil, fmt.Errorf("%w: reverse twin: %v", ErrFatal, err)
	}
	return &levelBuild{level: lvl, weightCol: weightCol}, nil
}
