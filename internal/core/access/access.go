// Package access holds the routing gate: a pure function from session state
// and a route's allowed-roles set to a decision. It performs no I/O and keeps
// no state; acting on the decision (redirects, status codes) is the HTTP
// layer's job.
package access

import "github.com/fishmart/gateway/internal/core/domain"

// Decision is the outcome of evaluating a navigation.
type Decision int

const (
	// Defer means the session is still resolving its stored credential.
	// Never redirect to login off a deferred decision.
	Defer Decision = iota
	// RedirectLogin sends an anonymous visitor to the auth entry point.
	RedirectLogin
	// RedirectHome sends an authenticated but under-privileged visitor to
	// the default landing view. They are logged in; login is the wrong place.
	RedirectHome
	// Allow renders the requested view.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Defer:
		return "defer"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Decide evaluates one navigation. An empty required set means any
// authenticated identity may pass. Decisions are computed fresh per request
// and must not be cached across identity changes.
func Decide(state domain.SessionState, required []domain.Role) Decision {
	if state.Booting() {
		return Defer
	}
	if !state.LoggedIn() {
		return RedirectLogin
	}
	if len(required) == 0 {
		return Allow
	}
	for _, r := range required {
		if state.Identity.Role == r {
			return Allow
		}
	}
	return RedirectHome
}
