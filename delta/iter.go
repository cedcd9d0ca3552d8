package delta

import "github.com/katalvlaran/graphline/mlcsr"

// CombinedIterator yields W's live edges first (in reverse insertion
// order, matching how the writable list is actually stored — the most
// recently added edge is the out-list head), then descends into the
// lower ML-CSR store.
type CombinedIterator struct {
	d *Delta
	v NodeID
	next EdgeHandle
	has bool
	useIn bool

	lower *mlcsr.Store
	lowerIt *mlcsr.StoreIterator
	inLower bool
}

// OutIter returns a CombinedIterator over v's live out-edges: W first,
// then lower.
func (d *Delta) OutIter(v NodeID, lower *mlcsr.Store) *CombinedIterator {
	rec := d.peek(v)
	it := &CombinedIterator{d: d, lower: lower}
	if rec != nil {
		rec.mu.Lock()
		it.next, it.has = rec.outHead, rec.hasOutHead
		rec.mu.Unlock()
	}
	it.v = v
	return it
}

// InIter is OutIter's in-edge counterpart.
func (d *Delta) InIter(v NodeID, lower *mlcsr.Store) *CombinedIterator {
	rec := d.peek(v)
	it := &CombinedIterator{d: d, lower: lower, useIn: true}
	if rec != nil {
		rec.mu.Lock()
		it.next, it.has = rec.inHead, rec.hasInHead
		rec.mu.Unlock()
	}
	it.v = v
	return it
}

// Next advances the iterator, returning the next live neighbor, the
// EdgeID it came from, and true, or the zero values and false once both
// W and the lower store are exhausted.
func (it *CombinedIterator) Next() (NodeID, mlcsr.EdgeID, bool) {
	for !it.inLower {
		if !it.has {
			it.inLower = true
			break
		}
		h := it.next
		pe := it.d.get(h)
		if pe == nil {
			it.has = false
			it.inLower = true
			break
		}
		if it.useIn {
			it.has, it.next = pe.hasNextIn, pe.nextIn
		} else {
			it.has, it.next = pe.hasNext, pe.nextOut
		}
		if pe.deleted {
			continue
		}
		nbr := pe.dst
		if it.useIn {
			nbr = pe.src
		}
		return nbr, mlcsr.EdgeID{Level: mlcsr.WritableLevel, Index: int(h)}, true
	}

	if it.lower == nil {
		return 0, mlcsr.EdgeID{}, false
	}
	if it.lowerIt == nil {
		if it.useIn {
			lit, err := it.lower.InIter(it.v, it.lower.NumLevels()-1)
			if err != nil {
				return 0, mlcsr.EdgeID{}, false
			}
			it.lowerIt = lit
		} else {
			it.lowerIt = it.lower.OutIter(it.v, it.lower.NumLevels()-1)
		}
	}
	return it.lowerIt.Next()
}
