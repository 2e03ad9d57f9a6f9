package handler

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fishmart/gateway/internal/api/middleware"
)

// NewProxy returns an echo handler that forwards the request to the
// ordering backend with the session's bearer token attached. The gateway
// cookie never leaves the gateway; other cookies pass through untouched.
// Routes using this handler are already behind a Gate, so the token is
// present by the time a request lands here.
func NewProxy(upstreamURL *url.URL, cookieName string, log zerolog.Logger) echo.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(upstreamURL)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("upstream proxy failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"ordering backend unavailable"}`))
	}

	return func(c echo.Context) error {
		req := c.Request()
		stripCookie(req, cookieName)
		if token := middleware.StateFrom(c).Token; token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		proxy.ServeHTTP(c.Response(), req)
		return nil
	}
}

// stripCookie removes one cookie from the request, keeping the rest.
func stripCookie(req *http.Request, name string) {
	cookies := req.Cookies()
	req.Header.Del("Cookie")
	for _, ck := range cookies {
		if ck.Name == name {
			continue
		}
		req.AddCookie(ck)
	}
}
