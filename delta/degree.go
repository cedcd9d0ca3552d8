package delta

import "github.com/katalvlaran/graphline/mlcsr"

// OutDegree sums W's live out-edge count for v with lower's degree minus
// any visible deletions, including frozen edges deleted since the last
// checkpoint.
func (d *Delta) OutDegree(v NodeID, lower *mlcsr.Store) int {
	wLive := 0
	if rec := d.peek(v); rec != nil {
		rec.mu.Lock()
		wLive = rec.liveOut
		rec.mu.Unlock()
	}

	lowerLive := 0
	it := lower.OutIter(v, lower.NumLevels()-1)
	for {
		_, e, ok := it.Next()
		if !ok {
			break
		}
		if _, deleted := lower.VisibilityOf(e); deleted {
			continue
		}
		lowerLive++
	}

	return wLive + lowerLive
}

// InDegree is OutDegree's in-edge counterpart, requiring a reverse twin.
func (d *Delta) InDegree(v NodeID, lower *mlcsr.Store) (int, error) {
	wLive := 0
	if rec := d.peek(v); rec != nil {
		rec.mu.Lock()
		// in-edges are not individually flagged dead on this side; a
		// writable in-edge is live iff its owning pendingEdge (on the
		// source's out-list) is not deleted, so count by walking it.
		h, has := rec.inHead, rec.hasInHead
		rec.mu.Unlock()
		for has {
			pe := d.get(h)
			if pe == nil {
				break
			}
			if !pe.deleted {
				wLive++
			}
			has, h = pe.hasNextIn, pe.nextIn
		}
	}

	it, err := lower.InIter(v, lower.NumLevels()-1)
	if err != nil {
		return 0, err
	}
	lowerLive := 0
	for {
		_, e, ok := it.Next()
		if !ok {
			break
		}
		if _, deleted := lower.Reverse.VisibilityOf(e); deleted {
			continue
		}
		lowerLive++
	}

	return wLive + lowerLive, nil
}
