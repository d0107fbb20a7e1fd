package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallestFirst(t *testing.T) {
	s := NewSlots(3)
	for want := 1; want <= 3; want++ {
		id, err := s.Take()
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
	_, err := s.Take()
	assert.ErrorIs(t, err, ErrFull)

	s.Free(2)
	s.Free(2)
	s.Free(7)
	assert.Equal(t, 2, s.InUse())

	id, err := s.Take()
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	_, err = s.Take()
	assert.ErrorIs(t, err, ErrFull, "double free must not duplicate an ID")
}

func TestConcurrentTake(t *testing.T) {
	const n = 50
	s := NewSlots(n)
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.Take()
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, s.InUse())
}
