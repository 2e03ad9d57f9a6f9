package ports

import (
	"context"

	"github.com/fishmart/gateway/internal/core/domain"
)

// SignupInput is the profile submitted on registration. Role assignment is
// owned by the backend; the gateway never picks a role client-side.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthClient talks to the ordering backend's auth surface. Each call is a
// single request; failed calls are not retried here — recovery is the user
// resubmitting.
//
// Error contract: rejected credentials map to domain.ErrAuthRejected, a
// rejected bearer token to domain.ErrTokenInvalid, and transport failures to
// domain.ErrUpstreamUnavailable.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, string, error)
	Signup(ctx context.Context, in SignupInput) (*domain.Identity, string, error)
	RiderLogin(ctx context.Context, phone, accessCode string) (*domain.Identity, string, error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}
