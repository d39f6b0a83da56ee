package usecase

import (
	"context"
	"time"
)

// SessionStore remembers which identifier a session handle belongs to.
type SessionStore interface {
	Save(ctx context.Context, sessionID, identifier string, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (string, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

// RealtimeTokenIssuer mints tokens that let clients attach their own live
// listeners to the store.
type RealtimeTokenIssuer interface {
	CustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error)
}
