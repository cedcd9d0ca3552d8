package xms

import "container/heap"

// heapItem is one candidate value drawn from a source (an in-memory
// partition during parallel sort, or an open spilled run during the
// merge phase), with enough position info for the caller to advance
// that source after popping.
type heapItem[T any] struct {
	value T
	src int
	pos int
}

// mergeHeap is a container/heap.Interface wrapper generic over T,
// ordering items by the caller-supplied comparator applied to value.
type mergeHeap[T any] struct {
	items []heapItem[T]
	less func(a, b T) bool
}

func newMergeHeap[T any](less func(a, b T) bool) *mergeHeap[T] {
	h := &mergeHeap[T]{less: less}
	heap.Init(h)
	return h
}

func (h *mergeHeap[T]) push(it heapItem[T]) { heap.Push(h, it) }

func (h *mergeHeap[T]) pop() heapItem[T] { return heap.Pop(h).(heapItem[T]) }

func (h *mergeHeap[T]) Len() int { return len(h.items) }

func (h *mergeHeap[T]) Less(i, j int) bool { return h.less(h.items[i].value, h.items[j].value) }

func (h *mergeHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *mergeHeap[T]) Push(x any) { h.items = append(h.items, x.(heapItem[T])) }

func (h *mergeHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}
