// Package minheap implements a generic min-heap over ordered values.
package minheap

import (
	"cmp"
	"container/heap"
)

// MinHeap provides the min-heap functionality.
// It can be passed as a copy, as it works with pointers internally.
// It is not goroutine-safe, users must implement mutexes on their end.
type MinHeap[T cmp.Ordered] struct {
	impl *sliceHeap[T]
}

type sliceHeap[T cmp.Ordered] []T

// NewHeap makes a new [MinHeap] with the initial values from `init`.
func NewHeap[T cmp.Ordered](init []T) MinHeap[T] {
	h := make(sliceHeap[T], len(init))
	copy(h, init)
	heap.Init(&h)
	return MinHeap[T]{impl: &h}
}

// Len returns the number of elements in the heap.
func (h MinHeap[T]) Len() int {
	return len(*h.impl)
}

// Min returns the smallest element without removing it. ok is false if the
// heap is empty. O(1).
func (h MinHeap[T]) Min() (v T, ok bool) {
	if h.Len() == 0 {
		return v, false
	}
	return (*h.impl)[0], true
}

// Pop removes and returns the smallest element. ok is false if the heap is
// empty. O(log n).
func (h MinHeap[T]) Pop() (v T, ok bool) {
	if h.Len() == 0 {
		return v, false
	}
	return heap.Pop(h.impl).(T), true
}

// Push adds an element. O(log n).
func (h MinHeap[T]) Push(x T) {
	heap.Push(h.impl, x)
}

// Below are the necessary methods for [heap.Interface].

func (h sliceHeap[T]) Len() int           { return len(h) }
func (h sliceHeap[T]) Less(i, j int) bool { return h[i] < h[j] }
func (h sliceHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *sliceHeap[T]) Push(x any) {
	*h = append(*h, x.(T))
}

func (h *sliceHeap[T]) Pop() any {
	last := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return last
}
