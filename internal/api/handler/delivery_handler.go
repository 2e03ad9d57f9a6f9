package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fishmart/gateway/internal/api/middleware"
	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
)

// DeliveryHandler serves the delivery management view. Admins see every
// assignment; riders see only their own orders. The backend returns a
// different shape for each, so the upstream client normalises both before
// they get here.
type DeliveryHandler struct {
	deliveries ports.DeliveryClient
}

func NewDeliveryHandler(deliveries ports.DeliveryClient) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

type assignmentsResponse struct {
	Assignments []ports.Assignment `json:"assignments"`
}

type verifyRequest struct {
	DeliveryCode string `json:"delivery_code" validate:"required"`
}

// List returns the caller's delivery assignments, optionally filtered by
// tab (active/completed) and a search term matching order id or customer
// phone.
//
// @Summary      List delivery assignments
// @Tags         deliveries
// @Produce      json
// @Param        tab  query     string  false  "active or completed"
// @Param        q    query     string  false  "order id or customer phone"
// @Success      200  {object}  assignmentsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /deliveries [get]
func (h *DeliveryHandler) List(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return domain.ErrNoSession
	}
	token := middleware.StateFrom(c).Token

	var (
		assignments []ports.Assignment
		err         error
	)
	switch identity.Role {
	case domain.RoleAdmin:
		assignments, err = h.deliveries.AdminAssignments(c.Request().Context(), token)
	case domain.RoleRider:
		assignments, err = h.deliveries.RiderOrders(c.Request().Context(), token, identity.ID)
	default:
		return domain.ErrForbidden
	}
	if err != nil {
		return err
	}

	filtered := filterAssignments(assignments, c.QueryParam("tab"), c.QueryParam("q"))
	return c.JSON(http.StatusOK, assignmentsResponse{Assignments: filtered})
}

// Verify submits the customer's delivery code for one assignment.
//
// @Summary      Verify a delivery code
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "assignment id"
// @Param        body  body      verifyRequest  true  "delivery code"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /deliveries/{id}/verify [post]
func (h *DeliveryHandler) Verify(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return domain.ErrNoSession
	}
	if !identity.Role.Can(domain.CapDeliverOrders) {
		return domain.ErrForbidden
	}

	var req verifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token := middleware.StateFrom(c).Token
	if err := h.deliveries.VerifyDelivery(c.Request().Context(), token, c.Param("id"), req.DeliveryCode); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

const deliveredStatus = "delivered"

func filterAssignments(assignments []ports.Assignment, tab, term string) []ports.Assignment {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]ports.Assignment, 0, len(assignments))
	for _, a := range assignments {
		switch tab {
		case "completed":
			if a.Status != deliveredStatus {
				continue
			}
		case "active":
			if a.Status == deliveredStatus {
				continue
			}
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(a.OrderID), term) &&
			!strings.Contains(strings.ToLower(a.CustomerPhone), term) {
			continue
		}
		out = append(out, a)
	}
	return out
}
