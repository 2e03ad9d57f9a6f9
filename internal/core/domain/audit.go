package domain

import "time"

// AuthEventKind classifies an audit trail entry.
type AuthEventKind string

const (
	AuthEventLogin         AuthEventKind = "login"
	AuthEventSignup        AuthEventKind = "signup"
	AuthEventRiderLogin    AuthEventKind = "rider_login"
	AuthEventLogout        AuthEventKind = "logout"
	AuthEventTokenRejected AuthEventKind = "token_rejected"
)

// AuthEvent records one session lifecycle transition for the audit trail.
// Events are best-effort: losing one never fails the transition it records.
type AuthEvent struct {
	Kind      AuthEventKind
	SessionID string
	ActorID   string
	ActorName string
	Role      Role
	Timestamp time.Time
}
