package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	l := NewList()
	a, b := &Client{addr: "a"}, &Client{addr: "b"}
	l.Add(a)
	l.Add(b)
	l.Add(a)
	assert.Equal(t, 2, l.Size())

	snapshot := l.Clients()
	l.Remove(a)
	assert.Len(t, snapshot, 2, "snapshot is a copy")
	assert.Equal(t, []*Client{b}, l.Clients())
}
