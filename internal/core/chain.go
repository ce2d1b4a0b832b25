package core

import "sync"

// valueChain pins values backing borrowed outputs for the lifetime of the
// owning Mock. It is append-only and never relocates what it holds, so
// pointers into pinned values stay valid as long as the mock exists.
type valueChain struct {
	mu     sync.Mutex
	pinned []any
}

func (c *valueChain) pin(v any) {
	c.mu.Lock()
	c.pinned = append(c.pinned, v)
	c.mu.Unlock()
}

func (c *valueChain) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pinned)
}
