package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
)

// SessionService implements the session lifecycle: boot-time credential
// resolution, the three login exchanges, and logout. It is the only writer
// of session credentials.
type SessionService struct {
	store ports.CredentialStore
	auth  ports.AuthClient
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewSessionService(store ports.CredentialStore, auth ports.AuthClient, audit ports.AuditSink, log zerolog.Logger) *SessionService {
	return &SessionService{store: store, auth: auth, audit: audit, log: log}
}

// Resolve turns the session's stored credential into a verified state.
//
// No stored token resolves to anonymous without a network call. A token the
// backend rejects is cleared and the session becomes anonymous silently —
// the user just sees the login screen. A transport failure keeps the token
// and reports the session as still booting so the gate defers instead of
// bouncing a possibly logged-in user to the login page.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (domain.SessionState, error) {
	token, ok, err := s.store.Read(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("credential read failed")
		return domain.Anonymous(), nil
	}
	if !ok {
		return domain.Anonymous(), nil
	}

	identity, err := s.auth.Me(ctx, token)
	switch {
	case err == nil:
		return domain.Authenticated(identity, token), nil
	case errors.Is(err, domain.ErrTokenInvalid):
		if clearErr := s.store.Clear(ctx, sessionID); clearErr != nil {
			s.log.Error().Err(clearErr).Str("session_id", sessionID).Msg("credential clear failed")
		}
		s.publish(domain.AuthEvent{Kind: domain.AuthEventTokenRejected, SessionID: sessionID})
		return domain.Anonymous(), nil
	default:
		// Backend unreachable: don't touch the credential, don't decide.
		return domain.SessionState{Phase: domain.PhaseBooting, Token: token}, err
	}
}

func (s *SessionService) Login(ctx context.Context, sessionID, email, password string) (*domain.Identity, error) {
	identity, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, sessionID, identity, token, domain.AuthEventLogin)
}

func (s *SessionService) Signup(ctx context.Context, sessionID string, in ports.SignupInput) (*domain.Identity, error) {
	identity, token, err := s.auth.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, sessionID, identity, token, domain.AuthEventSignup)
}

func (s *SessionService) RiderLogin(ctx context.Context, sessionID, phone, accessCode string) (*domain.Identity, error) {
	identity, token, err := s.auth.RiderLogin(ctx, phone, accessCode)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, sessionID, identity, token, domain.AuthEventRiderLogin)
}

// establish persists the credential and publishes the audit event. It only
// runs after a successful exchange, so a rejected attempt never mutates
// session state.
func (s *SessionService) establish(ctx context.Context, sessionID string, identity *domain.Identity, token string, kind domain.AuthEventKind) (*domain.Identity, error) {
	if err := s.store.Save(ctx, sessionID, token); err != nil {
		return nil, err
	}
	s.publish(domain.AuthEvent{
		Kind:      kind,
		SessionID: sessionID,
		ActorID:   identity.ID,
		ActorName: identity.Name,
		Role:      identity.Role,
	})
	return identity, nil
}

// Logout notifies the backend best-effort. The local credential is cleared
// in a defer so the session ends anonymous no matter how the remote call
// goes — local state is authoritative for "logged out".
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	defer func() {
		if err := s.store.Clear(ctx, sessionID); err != nil {
			s.log.Error().Err(err).Str("session_id", sessionID).Msg("credential clear failed")
		}
		s.publish(domain.AuthEvent{Kind: domain.AuthEventLogout, SessionID: sessionID})
	}()

	token, ok, err := s.store.Read(ctx, sessionID)
	if err != nil || !ok {
		return nil
	}
	if err := s.auth.Logout(ctx, token); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("remote logout failed, clearing locally anyway")
	}
	return nil
}

func (s *SessionService) publish(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Publish(event)
}
