package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoginRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewLoginRateLimiter(5, 3)
	defer rl.Stop()

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("attempt %d should pass: %v", i, err)
		}
	}
}

func TestLoginRateLimiter_BlocksBeyondBurst(t *testing.T) {
	rl := NewLoginRateLimiter(1, 2)
	defer rl.Stop()

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var lastErr error
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		lastErr = handler(e.NewContext(req, rec))
	}

	he, ok := lastErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third attempt, got %v", lastErr)
	}
}

func TestLoginRateLimiter_IsolatesClients(t *testing.T) {
	rl := NewLoginRateLimiter(1, 1)
	defer rl.Stop()

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	if err := handler(e.NewContext(req, httptest.NewRecorder())); err != nil {
		t.Fatalf("first client should pass: %v", err)
	}
	// First client exhausted its burst.
	if err := handler(e.NewContext(req, httptest.NewRecorder())); err == nil {
		t.Fatalf("first client should now be limited")
	}

	req2 := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req2.RemoteAddr = "10.0.0.4:1234"
	if err := handler(e.NewContext(req2, httptest.NewRecorder())); err != nil {
		t.Fatalf("second client should be unaffected: %v", err)
	}
}
