package ports

import "context"

// CredentialStore persists the single bearer token owned by each session.
// Read reports absence via ok=false rather than an error; Clear is
// idempotent. Implementations may degrade to process-local storage when the
// durable backend is unavailable — losing durability is acceptable, failing
// the session is not.
type CredentialStore interface {
	Save(ctx context.Context, sessionID, token string) error
	Read(ctx context.Context, sessionID string) (token string, ok bool, err error)
	Clear(ctx context.Context, sessionID string) error
}
