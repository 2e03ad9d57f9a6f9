package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fishmart/gateway/internal/api/metrics"
	"github.com/fishmart/gateway/internal/core/access"
	"github.com/fishmart/gateway/internal/core/domain"
)

const (
	loginPath   = "/auth"
	landingPath = "/"
)

// Gate enforces a route's allowed-roles set. The decision itself comes from
// access.Decide; this middleware only acts on it. An empty role list admits
// any authenticated identity. Browser navigations get redirects, API calls
// get status codes.
func Gate(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := access.Decide(StateFrom(c), required)
			metrics.GateDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case access.Allow:
				return next(c)
			case access.Defer:
				// Session still resolving; tell the client to come back
				// rather than bouncing it to login.
				c.Response().Header().Set("Retry-After", "1")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session still resolving")
			case access.RedirectLogin:
				if wantsHTML(c.Request()) {
					return c.Redirect(http.StatusFound, loginPath)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			case access.RedirectHome:
				if wantsHTML(c.Request()) {
					return c.Redirect(http.StatusFound, landingPath)
				}
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "unreachable gate decision")
		}
	}
}

// wantsHTML distinguishes a browser navigation from an API call.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
