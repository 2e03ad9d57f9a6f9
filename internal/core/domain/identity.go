package domain

import "fmt"

// Role is the access level assigned to an identity by the ordering backend.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleRider  Role = "rider"
)

// ParseRole validates a role string received from the backend.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleRider:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, s)
}

// Capability names an action a role may perform. Routes declare the roles
// they accept; handlers that need finer checks use Can instead of comparing
// role strings inline.
type Capability string

const (
	CapManageProducts  Capability = "manage_products"
	CapManageUsers     Capability = "manage_users"
	CapManageRiders    Capability = "manage_riders"
	CapModerateReviews Capability = "moderate_reviews"
	CapViewOrders      Capability = "view_orders"
	CapDeliverOrders   Capability = "deliver_orders"
)

var capabilities = map[Role]map[Capability]struct{}{
	RoleAdmin: {
		CapManageProducts:  {},
		CapManageUsers:     {},
		CapManageRiders:    {},
		CapModerateReviews: {},
		CapViewOrders:      {},
		CapDeliverOrders:   {},
	},
	RoleSeller: {
		CapViewOrders: {},
	},
	RoleRider: {
		CapDeliverOrders: {},
	},
}

// Can reports whether the role holds the given capability. Adding a role or
// capability is a change to the table above, nowhere else.
func (r Role) Can(c Capability) bool {
	_, ok := capabilities[r][c]
	return ok
}

// Identity is the verified actor behind a session. BikeNumberPlate is only
// populated for riders.
type Identity struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phonenumber,omitempty"`
	Role            Role   `json:"role"`
	BikeNumberPlate string `json:"bike_number_plate,omitempty"`
}
