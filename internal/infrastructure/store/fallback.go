package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fishmart/gateway/internal/core/ports"
)

// Fallback wraps a durable credential store with an in-memory one. When the
// durable store errors, the operation lands in memory instead: the token
// survives for this process only, which beats logging the user out because
// Redis blinked. Reads consult memory as well, so tokens written during an
// outage stay reachable.
type Fallback struct {
	primary ports.CredentialStore
	memory  *Memory
	log     zerolog.Logger
}

func NewFallback(primary ports.CredentialStore, memory *Memory, log zerolog.Logger) *Fallback {
	return &Fallback{primary: primary, memory: memory, log: log}
}

func (f *Fallback) Save(ctx context.Context, sessionID, token string) error {
	if err := f.primary.Save(ctx, sessionID, token); err != nil {
		f.log.Warn().Err(err).Msg("durable credential store unavailable, saving in memory")
		return f.memory.Save(ctx, sessionID, token)
	}
	// A durable save supersedes any outage-era copy.
	_ = f.memory.Clear(ctx, sessionID)
	return nil
}

func (f *Fallback) Read(ctx context.Context, sessionID string) (string, bool, error) {
	token, ok, err := f.primary.Read(ctx, sessionID)
	if err != nil {
		f.log.Warn().Err(err).Msg("durable credential store unavailable, reading from memory")
		return f.memory.Read(ctx, sessionID)
	}
	if ok {
		return token, true, nil
	}
	return f.memory.Read(ctx, sessionID)
}

// Clear removes the credential from both stores. A failed durable clear is
// retried once; if it still fails, the token stays live in the durable store
// until its TTL expires — logout succeeds locally, but the entry itself
// cannot be revoked while the backend is down.
func (f *Fallback) Clear(ctx context.Context, sessionID string) error {
	if err := f.primary.Clear(ctx, sessionID); err != nil {
		if err = f.primary.Clear(ctx, sessionID); err != nil {
			f.log.Warn().Err(err).
				Str("session_id", sessionID).
				Msg("durable credential clear failed, entry lives until TTL")
		}
	}
	return f.memory.Clear(ctx, sessionID)
}
