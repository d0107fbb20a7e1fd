// Package session hands out connection IDs.
package session

import (
	"errors"
	"sync"

	"github.com/lambdcalculus/periods/pkg/minheap"
)

// None is the ID of a connection that was refused a slot.
const None = 0

// ErrFull is returned when every slot is taken.
var ErrFull = errors.New("session: No free slots.")

// Slots stores which IDs can be taken by new connections, always giving out
// the smallest free one.
// Its methods can be called from multiple goroutines.
type Slots struct {
	heap  minheap.MinHeap[int]
	max   int
	taken map[int]bool
	mu    sync.Mutex
}

// NewSlots creates a [Slots] that can give up to `max` IDs (1, 2, ..., max).
func NewSlots(max int) *Slots {
	init := make([]int, max)
	for i := range init {
		init[i] = i + 1
	}
	return &Slots{
		heap:  minheap.NewHeap(init),
		max:   max,
		taken: make(map[int]bool, max),
	}
}

// Take pops the smallest available ID.
func (s *Slots) Take() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.heap.Pop()
	if !ok {
		return None, ErrFull
	}
	s.taken[id] = true
	return id, nil
}

// Free returns id to the pool. Freeing an ID that is not taken does nothing.
func (s *Slots) Free(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.taken[id] {
		return
	}
	delete(s.taken, id)
	s.heap.Push(id)
}

// InUse returns how many IDs are taken.
func (s *Slots) InUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.taken)
}

// Max returns the number of slots.
func (s *Slots) Max() int {
	return s.max
}
