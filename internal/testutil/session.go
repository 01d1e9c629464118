package testutil

import (
	"fmt"
	"sync"
)

// FixedSessionIDs generates predictable session ids for tests: prefix-1,
// prefix-2, and so on.
//
// Implements optimizer.SessionIDGenerator. Safe for concurrent use.
type FixedSessionIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewFixedSessionIDs creates a generator. An empty prefix means "session".
func NewFixedSessionIDs(prefix string) *FixedSessionIDs {
	if prefix == "" {
		prefix = "session"
	}
	return &FixedSessionIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *FixedSessionIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Reset restarts the sequence so the next id ends in 1.
func (g *FixedSessionIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
