package xms

import (
	"context"
	"sync"
)

// Sorter is an external merge sort over records of type T: Push buffers
// records in memory, spilling a sorted run to disk whenever the buffer
// fills; Sort finalizes (sorting and spilling any remainder) and readies
// the k-way merge; NextBlock drains the merged, non-decreasing sequence.
type Sorter[T any] struct {
	less func(a, b T) bool
	cfg Config

	mu sync.Mutex
	buf []T
	runs []*spillRun[T]
	dirN int

	sorted bool
	memSorted []T // fast path: everything fit in memory, no spill occurred
	memCursor int
	mergeHeap *mergeHeap[mergeSource]
	openByRun []*spillRun[T]
	runHead []T // each open run's last-decoded, not-yet-yielded record
}

// mergeSource is the heap payload during the merge phase: which run the
// entry came from, so Pop can refill from that run. The run's current
// value itself lives in Sorter.runHead.
type mergeSource struct {
	runIdx int
}

// New returns a Sorter using less as the total order and cfg to govern
// buffer size, parallelism, and spill location.
func New[T any](less func(a, b T) bool, cfg Config) *Sorter[T] {
	return &Sorter[T]{less: less, cfg: cfg}
}

// Push appends rec to the buffer, spilling a sorted run if the buffer has
// reached its configured capacity.
func (s *Sorter[T]) Push(rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = append(s.buf, rec)
	if len(s.buf) >= s.cfg.bufferCapacity() {
		return s.spillLocked()
	}
	return nil
}

func (s *Sorter[T]) spillLocked() error {
	sorted := sortParallel(s.buf, s.less, s.cfg.Workers)
	s.buf = s.buf[:0]
	run, err := writeRun[T](s.cfg, s.dirN, sorted)
	if err != nil {
		return err
	}
	s.dirN++
	s.runs = append(s.runs, run)
	if s.cfg.OnSpill != nil {
		s.cfg.OnSpill()
	}
	return nil
}

// Sort finalizes ingestion: sorts and either keeps or spills any buffered
// remainder, then prepares the merge cursor NextBlock reads from.
func (s *Sorter[T]) Sort(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if len(s.runs) == 0 {
		// Nothing spilled: everything fits in memory, skip disk entirely.
		s.memSorted = sortParallel(s.buf, s.less, s.cfg.Workers)
		s.buf = nil
		s.memCursor = 0
		s.sorted = true
		return nil
	}

	if len(s.buf) > 0 {
		if err := s.spillLocked(); err != nil {
			return err
		}
	}
	if err := s.primeMergeLocked(); err != nil {
		return err
	}
	s.sorted = true
	return nil
}

func (s *Sorter[T]) primeMergeLocked() error {
	less := func(a, b mergeSource) bool {
		return s.less(s.runHead[a.runIdx], s.runHead[b.runIdx])
	}
	s.mergeHeap = newMergeHeap(less)
	s.openByRun = s.runs
	s.runHead = make([]T, len(s.runs))
	for i, r := range s.runs {
		rec, ok, err := r.next()
		if err != nil {
			return err
		}
		if ok {
			s.runHead[i] = rec
			s.mergeHeap.push(heapItem[mergeSource]{value: mergeSource{runIdx: i}})
		}
	}
	return nil
}

// NextBlock fills out with up to len(out) records in non-decreasing order,
// returning how many were written and whether more remain.
func (s *Sorter[T]) NextBlock(out []T) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sorted {
		return 0, false, ErrNotSorted
	}

	if s.memSorted != nil {
		n := copy(out, s.memSorted[s.memCursor:])
		s.memCursor += n
		return n, s.memCursor < len(s.memSorted), nil
	}

	n := 0
	for n < len(out) && s.mergeHeap.Len() > 0 {
		top := s.mergeHeap.pop()
		run := s.openByRun[top.value.runIdx]
		out[n] = s.runHead[top.value.runIdx]
		n++

		rec, ok, err := run.next()
		if err != nil {
			return n, false, err
		}
		if ok {
			s.runHead[top.value.runIdx] = rec
			s.mergeHeap.push(heapItem[mergeSource]{value: mergeSource{runIdx: top.value.runIdx}})
		}
	}
	return n, s.mergeHeap.Len() > 0, nil
}

// RewindSorted repositions every open run (or the in-memory fast path) at
// its start, so NextBlock can be drained again from the beginning.
func (s *Sorter[T]) RewindSorted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sorted {
		return ErrNotSorted
	}
	if s.memSorted != nil {
		s.memCursor = 0
		return nil
	}
	for _, r := range s.runs {
		if err := r.rewind(); err != nil {
			return err
		}
	}
	return s.primeMergeLocked()
}

// Clear releases all runs (closing their file descriptors, which deletes
// the already-unlinked backing temp files) and resets the Sorter to empty.
func (s *Sorter[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, r := range s.runs {
		if err := r.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.runs = nil
	s.buf = nil
	s.memSorted = nil
	s.memCursor = 0
	s.sorted = false
	s.mergeHeap = nil
	s.openByRun = nil
	s.runHead = nil
	s.dirN = 0
	return firstErr
}
