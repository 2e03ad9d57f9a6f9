package ports

import (
	"context"

	"github.com/fishmart/gateway/internal/core/domain"
)

// SessionService owns every session-state mutation. It is the single writer
// of credentials; all other components read the resulting state.
type SessionService interface {
	// Resolve exchanges the session's stored credential for a verified
	// identity. No stored credential resolves to anonymous without touching
	// the network. A rejected credential is cleared silently. A transport
	// failure leaves the stored credential untouched and returns
	// domain.ErrUpstreamUnavailable alongside a booting state.
	Resolve(ctx context.Context, sessionID string) (domain.SessionState, error)

	Login(ctx context.Context, sessionID, email, password string) (*domain.Identity, error)
	Signup(ctx context.Context, sessionID string, in SignupInput) (*domain.Identity, error)
	RiderLogin(ctx context.Context, sessionID, phone, accessCode string) (*domain.Identity, error)

	// Logout notifies the backend best-effort and always clears local state.
	Logout(ctx context.Context, sessionID string) error
}
