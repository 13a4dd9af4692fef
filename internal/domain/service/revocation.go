package service

import (
	"context"
	"time"
)

// RevocationRegistry tracks invalidated token IDs. It is an injected
// collaborator rather than process-global state, so a shared store can
// back it when multiple instances run.
type RevocationRegistry interface {
	// Revoke marks a token ID as invalid until the given time, which
	// should be the token's natural expiry.
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	// IsRevoked reports whether a token ID is currently revoked.
	IsRevoked(ctx context.Context, tokenID string) bool
}
