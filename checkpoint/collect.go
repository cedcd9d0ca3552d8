package checkpoint

import (
	"context"
	"fmt"

	"github.com/katalvlaran/graphline/csrlevel"
	"github.com/katalvlaran/graphline/delta"
	"github.com/katalvlaran/graphline/mlcsr"
	"github.com/katalvlaran/graphline/xms"
)

// collected holds one direction's promoted adjacency, ready to build a
// csrlevel.Level from, plus the per-survivor duplicate count for weight
// accumulation.
type collected struct {
	degrees []uint32 // length maxNodes
	adj map[uint32][]uint32 // tail -> heads, in final per-tail order
	weights map[mlcsr.NodeID]map[mlcsr.NodeID]uint64
}

// collectPrimary walks w's touched nodes and gathers each one's live
// out-adjacency.
func collectPrimary(ctx context.Context, w *delta.Delta, touched []mlcsr.NodeID, maxNodes mlcsr.NodeID, opt Options) (collected, int, error) {
	degrees := make([]uint32, maxNodes)
	adj := make(map[uint32][]uint32, len(touched))
	var weights map[mlcsr.NodeID]map[mlcsr.NodeID]uint64
	if opt.Deduplicate && opt.WeightProperty != "" {
		weights = make(map[mlcsr.NodeID]map[mlcsr.NodeID]uint64)
	}
	dropped := 0

	for _, v := range touched {
		heads := w.LiveOutNeighbors(v)
		if len(heads) == 0 {
			continue
		}
		var counts map[mlcsr.NodeID]uint64
		if opt.Deduplicate {
			heads, counts, dropped = dedupePreserveFirst(heads, dropped)
		}
		adj[uint32(v)] = toUint32Slice(heads)
		degrees[v] = uint32(len(heads))
		if weights != nil {
			row := make(map[mlcsr.NodeID]uint64, len(heads))
			for _, h := range heads {
				if counts != nil {
					row[h] = counts[h]
				} else {
					row[h] = 1
				}
			}
			weights[v] = row
		}
	}

	if opt.SortAdjacency {
		sortedAdj, err := sortAdjacencyGlobally(ctx, adj, opt)
		if err != nil {
			return collected{}, 0, err
		}
		adj = sortedAdj
	}

	return collected{degrees: degrees, adj: adj, weights: weights}, dropped, nil
}

func toUint32Slice(ns []mlcsr.NodeID) []uint32 {
	out := make([]uint32, len(ns))
	for i, n := range ns {
		out[i] = uint32(n)
	}
	return out
}

// dedupePreserveFirst drops later duplicate entries in heads, keeping the
// first occurrence and counting how many times each survivor appeared,
// for weight accumulation. dropped accumulates the running count of
// dropped duplicates across calls.
func dedupePreserveFirst(heads []mlcsr.NodeID, dropped int) ([]mlcsr.NodeID, map[mlcsr.NodeID]uint64, int) {
	counts := make(map[mlcsr.NodeID]uint64, len(heads))
	out := heads[:0:0]
	for _, h := range heads {
		if _, ok := counts[h]; ok {
			counts[h]++
			dropped++
			continue
		}
		counts[h] = 1
		out = append(out, h)
	}
	return out, counts, dropped
}

// sortAdjacencyGlobally feeds every (tail, head) pair through an
// xms.Sorter[edgePair] and regroups the sorted stream back into a
// tail -> heads map. Both the input map and the regrouped result are held
// in memory; only the sorter's own buffer spills to disk.
func sortAdjacencyGlobally(ctx context.Context, adj map[uint32][]uint32, opt Options) (map[uint32][]uint32, error) {
	s := xms.New(func(a, b edgePair) bool {
		if a.Tail != b.Tail {
			return a.Tail < b.Tail
		}
		return a.Head < b.Head
	}, opt.xmsConfig())
	defer s.Clear()

	for tail, heads := range adj {
		for _, head := range heads {
			if err := s.Push(edgePair{Tail: tail, Head: head}); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFatal, err)
			}
		}
	}
	if err := s.Sort(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatal, err)
	}

	out := make(map[uint32][]uint32, len(adj))
	buf := make([]edgePair, 1024)
	for {
		n, more, err := s.NextBlock(buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFatal, err)
		}
		for _, p := range buf[:n] {
			out[p.Tail] = append(out[p.Tail], p.Head)
		}
		if !more {
			break
		}
	}
	return out, nil
}

// buildLevel materializes a csrlevel.Level from c, using the sorted-stream
// builder when every tail's heads are already in final order (Sorted
// adjacency produces a level usable with binary-search Find), else the
// from-degrees builder. When c.weights is non-nil it also returns a
// weight column index-aligned with the level's edge table, so the caller
// can attach it via mlcsr.Store.AppendPropertyLevel at the same (level,
// index) coordinates Find/OutIter will later use to read it back.
func buildLevel(maxNodes mlcsr.NodeID, c collected, sorted bool) (*csrlevel.Level, []uint64, error) {
	var weightCol []uint64
	if c.weights != nil {
		total := 0
		for _, d := range c.degrees {
			total += int(d)
		}
		weightCol = make([]uint64, total)
	}

	if sorted {
		sb := csrlevel.NewFromSortedStream(maxNodes)
		offset := 0
		for tail := uint32(0); tail < uint32(maxNodes); tail++ {
			heads, ok := c.adj[tail]
			if !ok {
				continue
			}
			csrHeads := make([]csrlevel.NodeID, len(heads))
			for i, h := range heads {
				csrHeads[i] = csrlevel.NodeID(h)
				if weightCol != nil {
					weightCol[offset+i] = c.weights[mlcsr.NodeID(tail)][mlcsr.NodeID(h)]
				}
			}
			if err := sb.PushAdjacency(csrlevel.NodeID(tail), csrHeads); err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrFatal, err)
			}
			offset += len(heads)
		}
		lvl, err := sb.Finish()
		return lvl, weightCol, err
	}

	b := csrlevel.NewFromDegrees(maxNodes, c.degrees)
	offset := 0
	offsets := make([]int, maxNodes)
	for v := mlcsr.NodeID(0); v < maxNodes; v++ {
		offsets[v] = offset
		offset += int(c.degrees[v])
	}
	for tail, heads := range c.adj {
		slice, err := b.AdjacencySlice(csrlevel.NodeID(tail))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrFatal, err)
		}
		for i, h := range heads {
			slice[i] = csrlevel.NodeID(h)
			if weightCol != nil {
				weightCol[offsets[tail]+i] = c.weights[mlcsr.NodeID(tail)][mlcsr.NodeID(h)]
			}
		}
	}
	lvl, err := b.Finish(sorted)
	return lvl, weightCol, err
}
