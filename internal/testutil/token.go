package testutil

import (
	"fmt"
	"sync"
)

// FixedTokens generates predictable correlation tokens ("test-1", "test-2",
// ...) so runtime logs and transcripts are stable across runs.
//
// Thread-safe: tokens may be requested from any goroutine.
type FixedTokens struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewFixedTokens creates a generator with the given prefix.
func NewFixedTokens(prefix string) *FixedTokens {
	return &FixedTokens{prefix: prefix}
}

// Generate returns the next token in sequence.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
