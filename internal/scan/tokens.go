package scan

import (
	"errors"
	"sync"
)

// ErrEmptyPool is returned when a CredentialPool is constructed with no
// tokens. Rotation over nothing has no meaning, so this fails up front.
var ErrEmptyPool = errors.New("credential pool requires at least one token")

// CredentialPool rotates round-robin over a fixed, ordered token list,
// wrapping indefinitely after the last entry. The rotated value doubles as
// the request's model identifier (see providers.Request). Safe for
// concurrent use by the worker pool.
type CredentialPool struct {
	mu     sync.Mutex
	tokens []string
	next   int
}

// NewCredentialPool creates a pool over tokens. Fails on an empty list.
func NewCredentialPool(tokens []string) (*CredentialPool, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyPool
	}
	copied := make([]string, len(tokens))
	copy(copied, tokens)
	return &CredentialPool{tokens: copied}, nil
}

// Next returns the next token in rotation.
func (p *CredentialPool) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	tok := p.tokens[p.next]
	p.next = (p.next + 1) % len(p.tokens)
	return tok
}

// Len returns the number of tokens in the pool.
func (p *CredentialPool) Len() int {
	return len(p.tokens)
}
