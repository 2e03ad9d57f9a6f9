package domain

// Phase is the lifecycle position of a session.
type Phase string

const (
	// PhaseBooting means the stored credential has not been resolved yet.
	// Access decisions must be deferred while a session is booting.
	PhaseBooting       Phase = "booting"
	PhaseAnonymous     Phase = "anonymous"
	PhaseAuthenticated Phase = "authenticated"
)

// SessionState is the full state of one browser session as seen by the
// gateway. Identity is non-nil iff Token is non-empty and the last
// verification against the backend succeeded. Only the session service
// writes SessionState; everything else reads it.
type SessionState struct {
	Phase    Phase
	Identity *Identity
	Token    string
}

// Anonymous returns the resolved state of a session with no identity.
func Anonymous() SessionState {
	return SessionState{Phase: PhaseAnonymous}
}

// Authenticated returns the resolved state for a verified identity.
func Authenticated(id *Identity, token string) SessionState {
	return SessionState{Phase: PhaseAuthenticated, Identity: id, Token: token}
}

// Booting reports whether the session is still inside its resolution window.
func (s SessionState) Booting() bool { return s.Phase == PhaseBooting }

// LoggedIn reports whether a verified identity is attached to the session.
func (s SessionState) LoggedIn() bool {
	return s.Phase == PhaseAuthenticated && s.Identity != nil
}
