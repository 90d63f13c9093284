package sessions

import (
	"context"
	"sync"
)

// MemoryRegistry is a process-local Registry backed by a mutex-guarded map.
// Entries live for the lifetime of the process; there is no expiry sweep
// because expired tokens are already rejected by the signature check.
type MemoryRegistry struct {
	mu     sync.RWMutex
	tokens map[string]int64
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tokens: make(map[string]int64)}
}

func (r *MemoryRegistry) Register(ctx context.Context, token string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *MemoryRegistry) IsLive(ctx context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[token]
	return ok, nil
}

func (r *MemoryRegistry) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *MemoryRegistry) RevokeByUserID(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, id := range r.tokens {
		if id == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

// Len reports the number of live entries. Used by tests.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
