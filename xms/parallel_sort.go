package xms

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// sortParallel sorts buf in place by splitting it into workers contiguous
// partitions and sorting each concurrently. The sorted partitions are
// then combined by one sequential heap-based k-way merge
// (mergeSortedSlices); the merge itself is not split across workers. The
// result is written into a fresh slice so the caller's buf is left
// untouched.
func sortParallel[T any](buf []T, less func(a, b T) bool, workers int) []T {
	n := len(buf)
	if n < 2 || workers < 2 {
		out := make([]T, n)
		copy(out, buf)
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
		return out
	}
	if workers > n {
		workers = n
	}

	partitions := make([][]T, workers)
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		if lo >= n {
			partitions[w] = nil
			continue
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		part := make([]T, hi-lo)
		copy(part, buf[lo:hi])
		partitions[w] = part
		g.Go(func() error {
			sort.Slice(part, func(i, j int) bool { return less(part[i], part[j]) })
			return nil
		})
	}
	_ = g.Wait() // sort.Slice never errors; this only awaits completion

	return mergeSortedSlices(partitions, less)
}

// mergeSortedSlices k-way merges already-sorted slices via container/heap.
func mergeSortedSlices[T any](parts [][]T, less func(a, b T) bool) []T {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, total)

	h := newMergeHeap(less)
	for i, p := range parts {
		if len(p) == 0 {
			continue
		}
		h.push(heapItem[T]{value: p[0], src: i, pos: 0})
	}
	for h.Len() > 0 {
		top := h.pop()
		out = append(out, top.value)
		next := top.pos + 1
		if next < len(parts[top.src]) {
			h.push(heapItem[T]{value: parts[top.src][next], src: top.src, pos: next})
		}
	}
	return out
}
