package minheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	init := []int{5, 3, 9, 1}
	h := NewHeap(init)
	h.Push(4)
	assert.Equal(t, []int{5, 3, 9, 1}, init, "input is copied")

	min, ok := h.Min()
	require.True(t, ok)
	assert.Equal(t, 1, min)

	var got []int
	for h.Len() > 0 {
		v, _ := h.Pop()
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 3, 4, 5, 9}, got)
}

func TestEmpty(t *testing.T) {
	h := NewHeap[string](nil)
	_, ok := h.Pop()
	assert.False(t, ok)
	_, ok = h.Min()
	assert.False(t, ok)

	h.Push("b")
	h.Push("a")
	v, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}
