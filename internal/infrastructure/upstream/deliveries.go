package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
)

// The backend exposes two shapes for the same data: admins get assignments
// with the order nested inside, riders get orders with their assignment
// nested inside. Both fold into ports.Assignment here so the delivery
// handler works off one shape.

type wireOrder struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
}

type wireRider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireAdminAssignment struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	OrderDetails wireOrder  `json:"order_details"`
	Rider        wireRider  `json:"rider"`
}

type wireRiderAssignment struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	DeliveredAt *time.Time `json:"delivered_at"`
}

type wireRiderOrder struct {
	wireOrder
	RiderAssignments []wireRiderAssignment `json:"rider_assignments"`
}

func (c *Client) AdminAssignments(ctx context.Context, token string) ([]ports.Assignment, error) {
	var body struct {
		Assignments []wireAdminAssignment `json:"assignments"`
	}
	if err := c.getJSON(ctx, "/admin/rider-assignments", token, &body); err != nil {
		return nil, err
	}

	out := make([]ports.Assignment, 0, len(body.Assignments))
	for _, a := range body.Assignments {
		out = append(out, ports.Assignment{
			ID:            a.ID,
			OrderID:       a.OrderDetails.ID,
			Status:        a.Status,
			CustomerName:  a.OrderDetails.CustomerName,
			CustomerPhone: a.OrderDetails.CustomerPhone,
			Address:       a.OrderDetails.Address,
			RiderID:       a.Rider.ID,
			RiderName:     a.Rider.Name,
			DeliveredAt:   a.DeliveredAt,
		})
	}
	return out, nil
}

func (c *Client) RiderOrders(ctx context.Context, token, riderID string) ([]ports.Assignment, error) {
	var body struct {
		Orders []wireRiderOrder `json:"orders"`
	}
	path := "/riders/" + url.PathEscape(riderID) + "/orders"
	if err := c.getJSON(ctx, path, token, &body); err != nil {
		return nil, err
	}

	out := make([]ports.Assignment, 0, len(body.Orders))
	for _, o := range body.Orders {
		a := ports.Assignment{
			OrderID:       o.ID,
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			Address:       o.Address,
			RiderID:       riderID,
		}
		// A rider sees at most one assignment per order: their own.
		if len(o.RiderAssignments) > 0 {
			a.ID = o.RiderAssignments[0].ID
			a.Status = o.RiderAssignments[0].Status
			a.DeliveredAt = o.RiderAssignments[0].DeliveredAt
		}
		out = append(out, a)
	}
	return out, nil
}

func (c *Client) VerifyDelivery(ctx context.Context, token, assignmentID, code string) error {
	path := "/order-riders/" + url.PathEscape(assignmentID) + "/verify-delivery"
	resp, err := c.do(ctx, http.MethodPost, path, token, map[string]string{
		"delivery_code": code,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp.Body)
		return domain.ErrTokenInvalid
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return fmt.Errorf("%w: verify-delivery returned %d", domain.ErrAuthRejected, resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: decoding verify-delivery response: %v", domain.ErrUpstreamUnavailable, err)
	}
	if !body.Success {
		return fmt.Errorf("%w: delivery code not accepted", domain.ErrAuthRejected)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp.Body)
		return domain.ErrTokenInvalid
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return fmt.Errorf("%w: %s returned %d", domain.ErrUpstreamUnavailable, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", domain.ErrUpstreamUnavailable, path, err)
	}
	return nil
}
