package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fishmart/gateway/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository persists auth lifecycle events. Writes arrive through the
// queue dispatcher, so a slow insert never sits on the login path.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Kind      string `bson:"kind"`
	SessionID string `bson:"session_id"`
	ActorID   string `bson:"actor_id,omitempty"`
	ActorName string `bson:"actor_name,omitempty"`
	Role      string `bson:"role,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuthEvent) error {
	doc := auditDoc{
		Kind:      string(event.Kind),
		SessionID: event.SessionID,
		ActorID:   event.ActorID,
		ActorName: event.ActorName,
		Role:      string(event.Role),
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
