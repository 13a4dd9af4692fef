package auth

import (
	"context"
	"sync"
	"time"

	"parceltrack/internal/domain/service"
)

// memoryRevocationRegistry is an in-memory implementation of the
// RevocationRegistry interface. Entries expire with the token they
// revoke, so the map stays bounded by the number of tokens revoked
// within one TTL window.
type memoryRevocationRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationRegistry creates an empty in-memory registry.
func NewMemoryRevocationRegistry() service.RevocationRegistry {
	return &memoryRevocationRegistry{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks a token ID as invalid until the given time.
func (r *memoryRevocationRegistry) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revoked[tokenID] = until
	r.sweepLocked()

	return nil
}

// IsRevoked reports whether a token ID is currently revoked.
func (r *memoryRevocationRegistry) IsRevoked(_ context.Context, tokenID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	until, ok := r.revoked[tokenID]

	return ok && r.now().Before(until)
}

// sweepLocked drops expired entries. Callers must hold the write lock.
func (r *memoryRevocationRegistry) sweepLocked() {
	now := r.now()
	for tokenID, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, tokenID)
		}
	}
}
