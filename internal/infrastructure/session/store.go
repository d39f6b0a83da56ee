// Package session remembers which identity a client signed in as, so a
// returning client does not need to log in again.
package session

import (
	"context"
	"time"
)

// KeyPrefix namespaces session records in the backing store.
const KeyPrefix = "session:"

type Store interface {
	// Save persists identifier under sessionID. A zero ttl never expires.
	Save(ctx context.Context, sessionID, identifier string, ttl time.Duration) error
	// Load returns the identifier, or ok=false when the session is absent.
	Load(ctx context.Context, sessionID string) (identifier string, ok bool, err error)
	// Clear removes the session; clearing an absent session is not an error.
	Clear(ctx context.Context, sessionID string) error
}

func key(sessionID string) string {
	return KeyPrefix + sessionID
}
