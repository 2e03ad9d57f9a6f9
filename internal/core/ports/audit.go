package ports

import (
	"context"

	"github.com/fishmart/gateway/internal/core/domain"
)

// AuditRepository persists auth lifecycle events.
type AuditRepository interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous recording. Publish never blocks
// the auth path and never fails it.
type AuditSink interface {
	Publish(event domain.AuthEvent)
}
