package mlcsr

import "github.com/katalvlaran/graphline/csrlevel"

// StoreIterator walks a vertex's out- (or, over a reverse Store, in-)
// neighbors across every visible level, newest first, yielding the raw
// neighbor NodeID plus the EdgeID it came from. Order across levels is
// unspecified beyond "newest first" — no order guarantee across levels,
// but stable within one level; within a level it is exactly that level's
// on-disk adjacency order.
type StoreIterator struct {
	levels []*csrlevel.Level
	levelIdx int // index into levels, counting down from the top
	v NodeID
	queryLevel int
	s *Store

	within csrlevel.Iterator
	scratch []NodeID
	haveCur bool
}

// OutIter returns an iterator over v's out-neighbors visible at
// atLevel (pass NumLevels-1 for "latest"). Complexity per Next call is
// amortized O(1); total iteration cost is O(sum of degrees across visible
// levels).
//
// OutIter does not itself pin atLevel against retirement: a caller that
// needs the levels it walks to stay resident across a longer-lived
// computation should acquire a Borrow first via BorrowAt and iterate
// while holding it.
func (s *Store) OutIter(v NodeID, atLevel int) *StoreIterator {
	levels := s.snapshotLevels()
	if atLevel >= len(levels) {
		atLevel = len(levels) - 1
	}
	it := &StoreIterator{
		levels: levels[:atLevel+1],
		levelIdx: atLevel,
		v: v,
		queryLevel: atLevel,
		s: s,
	}
	return it
}

// InIter returns an iterator over v's in-neighbors via the reverse twin.
// Returns ErrNoReverseTwin if reverse is not enabled.
func (s *Store) InIter(v NodeID, atLevel int) (*StoreIterator, error) {
	if s.Reverse == nil {
		return nil, ErrNoReverseTwin
	}
	return s.Reverse.OutIter(v, atLevel), nil
}

// Next advances the iterator, returning the next visible neighbor, the
// EdgeID it came from, and true — or the zero values and false once every
// visible level has been exhausted.
func (it *StoreIterator) Next() (NodeID, EdgeID, bool) {
	for {
		if !it.haveCur {
			if it.levelIdx < 0 {
				return 0, EdgeID{}, false
			}
			lvl := it.levels[it.levelIdx]
			if lvl == nil { // retired by KeepOnlyRecentVersions
				it.levelIdx--
				continue
			}
			it.within = lvl.Iter(it.v, it.scratch)
			it.haveCur = true
		}

		n, ok := it.within.Next()
		if !ok {
			it.haveCur = false
			it.levelIdx--
			continue
		}

		lvl := it.levels[it.levelIdx]
		globalIdx := int(lvl.VertexTable[it.v].Start) + it.within.Index()
		e := EdgeID{Level: it.levelIdx, Index: globalIdx}
		if it.s.visibleAt(e, it.queryLevel) {
			return n, e, true
		}
		// else: masked by a deletion, keep scanning
	}
}
