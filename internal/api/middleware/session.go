package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fishmart/gateway/internal/api/metrics"
	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
	"github.com/fishmart/gateway/internal/session"
)

const (
	sessionIDKey = "session_id"
	stateKey     = "session_state"
)

// Session resolves the browser session on every request: read the cookie,
// exchange the stored credential for a verified state, and stash both in the
// echo context. Requests without a valid cookie get a fresh anonymous
// session id and skip the store entirely. Resolution must finish before any
// gate runs, so this middleware sits ahead of every Gate in the chain.
func Session(cookies *session.CookieManager, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, err := cookies.Read(c)
			if err != nil {
				c.Set(sessionIDKey, session.NewSessionID())
				c.Set(stateKey, domain.Anonymous())
				metrics.SessionResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			state, resolveErr := sessions.Resolve(c.Request().Context(), sid)
			c.Set(sessionIDKey, sid)
			c.Set(stateKey, state)
			metrics.SessionResolutionsTotal.WithLabelValues(resolutionOutcome(state, resolveErr)).Inc()
			return next(c)
		}
	}
}

func resolutionOutcome(state domain.SessionState, err error) string {
	switch {
	case err != nil:
		return "unavailable"
	case state.LoggedIn():
		return "authenticated"
	default:
		return "anonymous"
	}
}

// SessionIDFrom returns the session id placed in context by Session.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(sessionIDKey).(string)
	return sid
}

// StateFrom returns the session state placed in context by Session. Absence
// reads as an anonymous state, which fails closed at the gate.
func StateFrom(c echo.Context) domain.SessionState {
	state, ok := c.Get(stateKey).(domain.SessionState)
	if !ok {
		return domain.Anonymous()
	}
	return state
}

// IdentityFrom returns the verified identity for the request, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	return StateFrom(c).Identity
}
