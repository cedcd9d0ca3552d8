package delta

import (
	"errors"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/graphline/mlcsr"
)

// NodeID re-exports the engine-wide vertex identifier type.
type NodeID = mlcsr.NodeID

// EdgeHandle packs (chunk, offset) into an arena index, exposed as an
// opaque value that addresses one pending-edge record inside a Delta's
// arena. It is never meaningful outside that Delta's lifetime (the arena
// is freed wholesale at checkpoint boundaries).
type EdgeHandle uint64

const (
	chunkSize = 1 << 16
	chunkBits = 16
	offsetMask = chunkSize - 1
)

func newHandle(chunk, offset int) EdgeHandle {
	return EdgeHandle(uint64(chunk)<<chunkBits | uint64(offset))
}

func (h EdgeHandle) chunk() int { return int(h >> chunkBits) }
func (h EdgeHandle) offset() int { return int(h) & offsetMask }

// NodeState is the lifecycle stamp of one touched vertex's W record
// (state machine: Absent → Allocated → Alive → Deleted).
type NodeState uint8

const (
	StateAbsent NodeState = iota
	StateAllocated
	StateAlive
	StateDeleted
)

// pendingEdge is one arena record: a W-tagged edge plus its liveness flag.
// Deleted edges are never removed from the arena mid-window — the delete
// flag is consulted by Checkpoint when it enumerates live adjacencies.
type pendingEdge struct {
	src, dst NodeID
	deleted bool

	nextOut EdgeHandle // next pending out-edge for src
	hasNext bool

	nextIn EdgeHandle // next pending in-edge for dst
	hasNextIn bool
}

// nodeRecord is one touched vertex's W-side bookkeeping.
type nodeRecord struct {
	mu sync.Mutex

	state NodeState

	outHead EdgeHandle // most recently added out-edge; list grows backward
	hasOutHead bool
	inHead EdgeHandle
	hasInHead bool

	liveOut int
	deadOut int

	createdAt int64
	deletedAt int64
}

// Delta is the writable layer staged between checkpoints.
type Delta struct {
	arenaMu sync.Mutex
	chunks [][]pendingEdge

	nodesMu sync.RWMutex
	nodes map[NodeID]*nodeRecord

	deletionMu sync.Mutex
	lowerDeletions map[mlcsr.EdgeID]int64 // edge -> timestamp of first deletion request (minimum wins)

	touchedMu sync.Mutex
	touched *bitset.BitSet
}

// New returns an empty Delta.
func New() *Delta {
	return &Delta{
		nodes: make(map[NodeID]*nodeRecord),
		lowerDeletions: make(map[mlcsr.EdgeID]int64),
		touched: bitset.New(1024),
	}
}

// Sentinel errors.
var (
	ErrEdgeNotFound = errors.New("delta: edge not found in writable layer")
	ErrNotWritable = errors.New("delta: edge id is not writable-tagged")
	ErrUnknownHandle = errors.New("delta: edge handle out of range")
)
