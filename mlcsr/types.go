package mlcsr

import (
	"errors"
	"sync"

	"github.com/katalvlaran/graphline/csrlevel"
)

// NodeID re-exports csrlevel's vertex identifier so callers of mlcsr never
// need to import csrlevel directly just to name a vertex.
type NodeID = csrlevel.NodeID

// WritableLevel is the distinguished level tag an EdgeID carries while the
// edge still lives only in the writable delta, never in a frozen Level.
const WritableLevel = -1

// NilEdge denotes "no edge" (LL_NIL_EDGE).
var NilEdge = EdgeID{Level: -2, Index: 0}

// EdgeID packs a level number and an index within that level's edge table.
// It uniquely identifies an edge for the lifetime of a run: the level
// number is frozen at the edge's promotion and never changes afterward,
// even as further levels are appended above it.
type EdgeID struct {
	Level int
	Index int
}

// IsWritable reports whether e still lives in the writable delta.
func (e EdgeID) IsWritable() bool { return e.Level == WritableLevel }

// IsNil reports whether e is the distinguished "no edge" value.
func (e EdgeID) IsNil() bool { return e == NilEdge }

// Column is a per-level property array. Exactly one of U32/U64 is
// non-nil, matching "32-bit or 64-bit value per edge".
type Column struct {
	U32 []uint32
	U64 []uint64
}

// Len reports the column's element count for whichever width is in use.
func (c Column) Len() int {
	if c.U32 != nil {
		return len(c.U32)
	}
	return len(c.U64)
}

// Sentinel errors.
var (
	ErrLevelOutOfRange = errors.New("mlcsr: level index out of range")
	ErrNoReverseTwin = errors.New("mlcsr: reverse direction not enabled")
	ErrUnknownProperty = errors.New("mlcsr: unknown property column")
	ErrPropertyWidth = errors.New("mlcsr: property column width mismatch")
	ErrBorrowAboveWindow = errors.New("mlcsr: borrow may not observe a level above its pin")
)

// Store is the ordered stack of csrlevel.Level values plus the deletion
// overlay and property columns. Reverse, if non-nil, is a second Store
// indexed by head instead of tail, maintained in lockstep by package
// checkpoint.
type Store struct {
	levelsMu sync.RWMutex
	levels []*csrlevel.Level

	maxVisMu sync.Mutex
	maxVis map[EdgeID]int

	propsMu sync.Mutex
	properties map[string][]Column // property name -> one Column per level

	borrowMu sync.Mutex
	borrows []*refBitset // borrows[level] tracks outstanding pins on that level, level 0 included

	maxNodes NodeID

	Reverse *Store
}

// New returns an empty Store with room for maxNodes vertices. Reverse is
// wired up by the caller (engine/checkpoint) when the reverse twin is
// enabled; a freshly constructed Store never has one.
func New(maxNodes NodeID) *Store {
	return &Store{
		maxVis: make(map[EdgeID]int),
		properties: make(map[string][]Column),
		maxNodes: maxNodes,
	}
}

// NumLevels returns the number of published levels. Readers snapshot this
// once per query.
func (s *Store) NumLevels() int {
	s.levelsMu.RLock()
	defer s.levelsMu.RUnlock()
	return len(s.levels)
}

// MaxNodes returns the store's current vertex-space size.
func (s *Store) MaxNodes() NodeID {
	s.levelsMu.RLock()
	defer s.levelsMu.RUnlock()
	return s.maxNodes
}

// SetMaxNodes raises the store's notion of max_nodes to n when n is larger,
// and is a no-op otherwise. engine wires it as checkpoint's publish
// callback, which passes the store's current MaxNodes.
func (s *Store) SetMaxNodes(n NodeID) {
	s.levelsMu.Lock()
	defer s.levelsMu.Unlock()
	if n > s.maxNodes {
		s.maxNodes = n
	}
}
