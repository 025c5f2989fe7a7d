package storage

import "context"

// TokenStore persists the bearer token across client restarts. The
// token is the only durable client-side state; everything else lives in
// memory for the life of the process.
type TokenStore interface {
	// Load returns the stored token, empty when none is held.
	Load(ctx context.Context) (string, error)

	// Save replaces the stored token.
	Save(ctx context.Context, token string) error

	// Clear removes the stored token; clearing an empty store is a
	// no-op.
	Clear(ctx context.Context) error
}
