package client

import (
	"sync"
)

// Implements a list of clients with a set data structure.
type List struct {
	set map[*Client]struct{}
	mu  sync.Mutex
}

// Creates a new client list.
func NewList() *List {
	return &List{set: make(map[*Client]struct{})}
}

// Adds a client to the list.
func (l *List) Add(c *Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.set[c] = struct{}{}
}

// Removes a client from the list.
func (l *List) Remove(c *Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.set, c)
}

// Returns a copy of the clients, which can be ranged over.
func (l *List) Clients() []*Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	cpy := make([]*Client, 0, len(l.set))
	for c := range l.set {
		cpy = append(cpy, c)
	}
	return cpy
}

func (l *List) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.set)
}
