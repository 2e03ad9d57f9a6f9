package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
	"github.com/fishmart/gateway/internal/session"
)

type stubSessionService struct {
	resolveFn    func(ctx context.Context, sessionID string) (domain.SessionState, error)
	resolveCalls int
}

func (s *stubSessionService) Resolve(ctx context.Context, sessionID string) (domain.SessionState, error) {
	s.resolveCalls++
	return s.resolveFn(ctx, sessionID)
}

func (s *stubSessionService) Login(context.Context, string, string, string) (*domain.Identity, error) {
	panic("not used")
}

func (s *stubSessionService) Signup(context.Context, string, ports.SignupInput) (*domain.Identity, error) {
	panic("not used")
}

func (s *stubSessionService) RiderLogin(context.Context, string, string, string) (*domain.Identity, error) {
	panic("not used")
}

func (s *stubSessionService) Logout(context.Context, string) error { panic("not used") }

func TestSession_NoCookieMintsFreshAnonymousSession(t *testing.T) {
	e := echo.New()
	cookies := session.NewCookieManager("a-long-enough-secret", "_fishmart_session", false, time.Hour)
	svc := &stubSessionService{resolveFn: func(ctx context.Context, sessionID string) (domain.SessionState, error) {
		t.Fatalf("Resolve should not be called without a cookie")
		return domain.Anonymous(), nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(cookies, svc)(func(c echo.Context) error {
		if SessionIDFrom(c) == "" {
			t.Fatalf("expected a fresh session id")
		}
		if StateFrom(c).LoggedIn() {
			t.Fatalf("fresh session must be anonymous")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.resolveCalls != 0 {
		t.Fatalf("expected zero resolve calls, got %d", svc.resolveCalls)
	}
}

func TestSession_CookieResolvesState(t *testing.T) {
	e := echo.New()
	cookies := session.NewCookieManager("a-long-enough-secret", "_fishmart_session", false, time.Hour)
	identity := &domain.Identity{ID: "u1", Name: "Alice", Role: domain.RoleAdmin}
	svc := &stubSessionService{resolveFn: func(ctx context.Context, sessionID string) (domain.SessionState, error) {
		return domain.Authenticated(identity, "T1"), nil
	}}

	// Issue a cookie through a throwaway context, replay it on the real one.
	seed := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	sid := session.NewSessionID()
	if err := cookies.Issue(seed, sid); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	res := http.Response{Header: seed.Response().Header()}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range res.Cookies() {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(cookies, svc)(func(c echo.Context) error {
		if SessionIDFrom(c) != sid {
			t.Fatalf("expected session id %s, got %s", sid, SessionIDFrom(c))
		}
		if got := IdentityFrom(c); got == nil || got.ID != "u1" {
			t.Fatalf("expected identity u1, got %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.resolveCalls != 1 {
		t.Fatalf("expected one resolve call, got %d", svc.resolveCalls)
	}
}
