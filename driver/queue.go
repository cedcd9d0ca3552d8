package driver

import (
	"errors"
	"sync/atomic"

	"github.com/katalvlaran/graphline/mlcsr"
)

// ErrRaceDetected is returned by a Stripe's Dequeue when it observes a
// slot sequence number inconsistent with its own read position — the
// SPSC contract (one producer, one consumer per stripe) was violated,
// e.g. by two goroutines draining the same stripe concurrently. It is
// always fatal.
var ErrRaceDetected = errors.New("driver: race detected on request stripe")

// RequestOp names the mutation a queued Request applies to W.
type RequestOp uint8

const (
	OpAddEdge RequestOp = iota
	OpDeleteEdge
	OpDeleteNode
)

// Request is one pending mutation, sharded across stripes by a bit-field
// of its source node (glossary: "Stripe / Request Queue").
type Request struct {
	Op RequestOp
	Src, Dst mlcsr.NodeID
}

// Stripe is a single producer/single consumer shard of pending Requests:
// one small interface, no stripe-kind class hierarchy.
type Stripe interface {
	Enqueue(req Request) bool
	Dequeue() (Request, bool, error)
}

// ringSlot is one cell of a RingStripe, stamped with the lap sequence
// number that makes the ring lock-free and detects a same-lap re-read.
type ringSlot struct {
	seq atomic.Uint64
	req Request
}

// RingStripe is a fixed-capacity lock-free SPSC ring. Capacity is rounded
// up to the next power of two.
type RingStripe struct {
	mask uint64
	slots []ringSlot
	head atomic.Uint64
	tail atomic.Uint64
}

// NewRingStripe returns a RingStripe holding at least capacity requests.
func NewRingStripe(capacity int) *RingStripe {
	n := nextPow2(capacity)
	slots := make([]ringSlot, n)
	for i := range slots {
		slots[i].seq.Store(uint64(i))
	}
	return &RingStripe{mask: uint64(n - 1), slots: slots}
}

func nextPow2(n int) int {
	if n < 1 {
		n = 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Len reports the stripe's current backlog, used by the Analyst to
// decide whether to drain before checkpointing.
func (r *RingStripe) Len() int {
	n := int64(r.tail.Load()) - int64(r.head.Load())
	if n < 0 {
		return 0
	}
	return int(n)
}

// Enqueue appends req, returning false if the stripe is currently full.
func (r *RingStripe) Enqueue(req Request) bool {
	pos := r.tail.Load()
	slot := &r.slots[pos&r.mask]
	diff := int64(slot.seq.Load()) - int64(pos)
	if diff != 0 {
		return false
	}
	if !r.tail.CompareAndSwap(pos, pos+1) {
		return false
	}
	slot.req = req
	slot.seq.Store(pos + 1)
	return true
}

// Dequeue pops the oldest Request, returning (zero, false, nil) when the
// stripe is empty. A sequence mismatch beyond the expected "not yet
// written" gap means a second consumer already advanced this slot —
// ErrRaceDetected.
func (r *RingStripe) Dequeue() (Request, bool, error) {
	pos := r.head.Load()
	slot := &r.slots[pos&r.mask]
	diff := int64(slot.seq.Load()) - int64(pos+1)
	if diff < 0 {
		return Request{}, false, nil
	}
	if diff > 0 {
		return Request{}, false, ErrRaceDetected
	}
	if !r.head.CompareAndSwap(pos, pos+1) {
		return Request{}, false, ErrRaceDetected
	}
	req := slot.req
	slot.seq.Store(pos + uint64(len(r.slots)))
	return req, true, nil
}
