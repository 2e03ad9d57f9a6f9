package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fishmart/gateway/internal/api/metrics"
	"github.com/fishmart/gateway/internal/api/middleware"
	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
	"github.com/fishmart/gateway/internal/session"
)

// AuthHandler exposes the session lifecycle over HTTP. It binds and
// validates the form payloads, delegates every state change to the session
// service, and manages the browser cookie.
type AuthHandler struct {
	sessions ports.SessionService
	cookies  *session.CookieManager
}

func NewAuthHandler(sessions ports.SessionService, cookies *session.CookieManager) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type riderLoginRequest struct {
	Phone      string `json:"phonenumber" validate:"required,e164"`
	AccessCode string `json:"accessCode" validate:"required"`
}

type identityResponse struct {
	User *domain.Identity `json:"user"`
}

// Login authenticates an email/password pair against the ordering backend.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  identityResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sid := middleware.SessionIDFrom(c)
	identity, err := h.sessions.Login(c.Request().Context(), sid, req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", attemptResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()

	if err := h.cookies.Issue(c, sid); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{User: identity})
}

// Signup registers a new account. The backend assigns the role.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "New account profile"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sid := middleware.SessionIDFrom(c)
	identity, err := h.sessions.Signup(c.Request().Context(), sid, ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", attemptResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signup", "ok").Inc()

	if err := h.cookies.Issue(c, sid); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, identityResponse{User: identity})
}

// RiderLogin authenticates a rider by phone number and access code.
//
// @Summary      Rider login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      riderLoginRequest  true  "Rider credentials"
// @Success      200   {object}  identityResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/rider-login [post]
func (h *AuthHandler) RiderLogin(c echo.Context) error {
	var req riderLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sid := middleware.SessionIDFrom(c)
	identity, err := h.sessions.RiderLogin(c.Request().Context(), sid, req.Phone, req.AccessCode)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("rider_login", attemptResult(err)).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("rider_login", "ok").Inc()

	if err := h.cookies.Issue(c, sid); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{User: identity})
}

// Logout ends the session. The cookie and stored credential are cleared even
// when the backend cannot be reached.
//
// @Summary      Log out
// @Tags         auth
// @Success      204  "logged out"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := middleware.SessionIDFrom(c)
	if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	h.cookies.Destroy(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity behind the current session. A session still
// booting (backend unreachable during resolution) is not "logged out" — it
// reports the outage so the client retries instead of dropping the session.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	state := middleware.StateFrom(c)
	if state.Booting() {
		return domain.ErrUpstreamUnavailable
	}
	if !state.LoggedIn() {
		return domain.ErrNoSession
	}
	return c.JSON(http.StatusOK, identityResponse{User: state.Identity})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// attemptResult distinguishes a rejection from an outage for metrics.
func attemptResult(err error) string {
	if errors.Is(err, domain.ErrAuthRejected) {
		return "rejected"
	}
	return "unavailable"
}
