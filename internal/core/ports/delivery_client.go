package ports

import (
	"context"
	"time"
)

// Assignment is the normalised view of one rider delivery assignment. The
// backend returns different shapes to admins (assignment wrapping order
// details) and riders (order wrapping assignment); the delivery client folds
// both into this one.
type Assignment struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	RiderID       string     `json:"rider_id,omitempty"`
	RiderName     string     `json:"rider_name,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// DeliveryClient reads and mutates rider assignments on the ordering
// backend. All calls carry the session's bearer token.
type DeliveryClient interface {
	// AdminAssignments lists every assignment in the system.
	AdminAssignments(ctx context.Context, token string) ([]Assignment, error)
	// RiderOrders lists the assignments belonging to one rider.
	RiderOrders(ctx context.Context, token, riderID string) ([]Assignment, error)
	// VerifyDelivery submits the customer's delivery code for an assignment.
	VerifyDelivery(ctx context.Context, token, assignmentID, code string) error
}
