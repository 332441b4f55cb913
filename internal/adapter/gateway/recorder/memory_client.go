package recorder

import (
	"context"
	"fmt"
	"sync"
)

// MemoryClient collects entries in memory for tests. Err, when set, is
// returned from every append to exercise the logged-and-swallowed path.
type MemoryClient struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int

	Err error
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

func (c *MemoryClient) CreateTransaction(_ context.Context, entry Entry) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.entries = append(c.entries, entry)
	return fmt.Sprintf("txn-%06d", c.nextID), nil
}

func (c *MemoryClient) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
