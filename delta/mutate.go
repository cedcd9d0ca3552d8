package delta

import (
	"github.com/katalvlaran/graphline/ingest"
	"github.com/katalvlaran/graphline/mlcsr"
)

// AddEdge allocates a new writable-tagged edge src→dst, appending it to
// src's out-list and dst's in-list. Endpoint locks are taken in ascending
// NodeID order. The returned EdgeID's Index is the edge's
// arena handle reinterpreted as an int — callers must not rely on it
// meaning anything outside this Delta's lifetime.
func (d *Delta) AddEdge(ctx ingest.Context, src, dst NodeID) mlcsr.EdgeID {
	srcRec := d.ensureNode(src)
	dstRec := d.ensureNode(dst)
	unlock := lockPairAscending(srcRec, dstRec, src, dst)
	defer unlock()

	h := d.allocate(pendingEdge{src: src, dst: dst})
	rec := d.get(h)
	if srcRec.hasOutHead {
		rec.nextOut, rec.hasNext = srcRec.outHead, true
	}
	srcRec.outHead, srcRec.hasOutHead = h, true
	srcRec.liveOut++
	srcRec.state = StateAlive
	if srcRec.createdAt == 0 {
		srcRec.createdAt = ctx.NowTimestamp
	}

	if dstRec.hasInHead {
		rec.nextIn, rec.hasNextIn = dstRec.inHead, true
	}
	dstRec.inHead, dstRec.hasInHead = h, true
	dstRec.state = StateAlive
	if dstRec.createdAt == 0 {
		dstRec.createdAt = ctx.NowTimestamp
	}

	return mlcsr.EdgeID{Level: mlcsr.WritableLevel, Index: int(h)}
}

// AddEdgeIfNotExists probes lower first, then W's out-list, inserting only
// if src→dst is absent anywhere. Returns (edge, true) when it created a
// new edge, (edge, false) when one already existed.
func (d *Delta) AddEdgeIfNotExists(ctx ingest.Context, lower *mlcsr.Store, src, dst NodeID) (mlcsr.EdgeID, bool) {
	if e, ok := lower.Find(src, dst); ok {
		return e, false
	}
	if e, ok := d.findInW(src, dst); ok {
		return e, false
	}
	return d.AddEdge(ctx, src, dst), true
}

// FindEdge resolves src→dst against lower first, then against this
// Delta's writable layer, mirroring the lookup AddEdgeIfNotExists already
// performs internally. Exposed for callers (e.g. driver's RequestQueue
// drain) that need to turn a (src, dst) pair back into an EdgeID before
// calling DeleteEdge.
func (d *Delta) FindEdge(lower *mlcsr.Store, src, dst NodeID) (mlcsr.EdgeID, bool) {
	if e, ok := lower.Find(src, dst); ok {
		return e, true
	}
	return d.findInW(src, dst)
}

// findInW scans src's pending out-list for an edge to dst.
func (d *Delta) findInW(src, dst NodeID) (mlcsr.EdgeID, bool) {
	d.nodesMu.RLock()
	rec, ok := d.nodes[src]
	d.nodesMu.RUnlock()
	if !ok {
		return mlcsr.NilEdge, false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.hasOutHead {
		return mlcsr.NilEdge, false
	}
	h := rec.outHead
	for {
		pe := d.get(h)
		if pe == nil {
			return mlcsr.NilEdge, false
		}
		if !pe.deleted && pe.dst == dst {
			return mlcsr.EdgeID{Level: mlcsr.WritableLevel, Index: int(h)}, true
		}
		if !pe.hasNext {
			return mlcsr.NilEdge, false
		}
		h = pe.nextOut
	}
}

// DeleteEdge marks e dead. A writable-tagged e flips its arena record's
// deleted flag and decrements its source's live out-edge counter; a frozen
// e is recorded in W's deletion map and in lower's max-visible-level map
// instead (lowered to e's own level, so it is hidden from every later
// level). Idempotent either way.
func (d *Delta) DeleteEdge(ctx ingest.Context, lower *mlcsr.Store, e mlcsr.EdgeID) error {
	if e.IsWritable() {
		h := EdgeHandle(e.Index)
		pe := d.get(h)
		if pe == nil {
			return ErrEdgeNotFound
		}
		d.arenaMu.Lock()
		alreadyDead := pe.deleted
		pe.deleted = true
		d.arenaMu.Unlock()
		if !alreadyDead {
			if rec := d.peek(pe.src); rec != nil {
				rec.mu.Lock()
				rec.liveOut--
				rec.deadOut++
				rec.mu.Unlock()
			}
		}
		return nil
	}

	d.deletionMu.Lock()
	defer d.deletionMu.Unlock()
	if ts, ok := d.lowerDeletions[e]; !ok || ctx.NowTimestamp < ts {
		d.lowerDeletions[e] = ctx.NowTimestamp
	}
	lower.UpdateMaxVisibleLevelLowerOnly(e, e.Level)

	return nil
}

func (d *Delta) peek(v NodeID) *nodeRecord {
	d.nodesMu.RLock()
	defer d.nodesMu.RUnlock()
	return d.nodes[v]
}

// DeleteNode tombstones v: walks its frozen neighbors in both directions
// (lowering their visibility in lower), and marks its W-only edges dead.
func (d *Delta) DeleteNode(ctx ingest.Context, lower *mlcsr.Store, v NodeID) {
	rec := d.ensureNode(v)
	rec.mu.Lock()
	rec.state = StateDeleted
	rec.deletedAt = ctx.NowTimestamp
	h, has := rec.outHead, rec.hasOutHead
	rec.mu.Unlock()

	for has {
		pe := d.get(h)
		if pe == nil {
			break
		}
		if !pe.deleted {
			d.arenaMu.Lock()
			pe.deleted = true
			d.arenaMu.Unlock()
			rec.mu.Lock()
			rec.liveOut--
			rec.deadOut++
			rec.mu.Unlock()
		}
		has = pe.hasNext
		h = pe.nextOut
	}

	it := lower.OutIter(v, lower.NumLevels()-1)
	for {
		_, e, ok := it.Next()
		if !ok {
			break
		}
		lower.UpdateMaxVisibleLevelLowerOnly(e, e.Level)
	}
	if lower.Reverse != nil {
		if in, err := lower.InIter(v, lower.NumLevels()-1); err == nil {
			for {
				u, re, ok := in.Next()
				if !ok {
					break
				}
				lower.Reverse.UpdateMaxVisibleLevelLowerOnly(re, re.Level)
				if e, found := lower.Find(u, v); found {
					lower.UpdateMaxVisibleLevelLowerOnly(e, e.Level)
				}
			}
		}
	}
}
