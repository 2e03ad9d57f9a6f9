package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newContext(e *echo.Echo, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issuedCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieRoundTrip(t *testing.T) {
	e := echo.New()
	m := NewCookieManager("a-long-enough-secret", "_fishmart_session", false, time.Hour)

	c, rec := newContext(e)
	sid := NewSessionID()
	if err := m.Issue(c, sid); err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	ck := issuedCookie(t, rec, "_fishmart_session")
	if !ck.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	c2, _ := newContext(e, ck)
	got, err := m.Read(c2)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got != sid {
		t.Fatalf("expected session id %s, got %s", sid, got)
	}
}

func TestRead_MissingCookie(t *testing.T) {
	e := echo.New()
	m := NewCookieManager("a-long-enough-secret", "_fishmart_session", false, time.Hour)

	c, _ := newContext(e)
	if _, err := m.Read(c); err != ErrNoCookie {
		t.Fatalf("expected ErrNoCookie, got %v", err)
	}
}

func TestRead_TamperedCookie(t *testing.T) {
	e := echo.New()
	m := NewCookieManager("a-long-enough-secret", "_fishmart_session", false, time.Hour)
	other := NewCookieManager("a-different-secret!!", "_fishmart_session", false, time.Hour)

	c, rec := newContext(e)
	if err := other.Issue(c, NewSessionID()); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	ck := issuedCookie(t, rec, "_fishmart_session")

	c2, _ := newContext(e, ck)
	if _, err := m.Read(c2); err != ErrNoCookie {
		t.Fatalf("expected ErrNoCookie for wrong signature, got %v", err)
	}
}

func TestRead_ExpiredCookie(t *testing.T) {
	e := echo.New()
	m := NewCookieManager("a-long-enough-secret", "_fishmart_session", false, -time.Minute)

	c, rec := newContext(e)
	if err := m.Issue(c, NewSessionID()); err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	ck := issuedCookie(t, rec, "_fishmart_session")

	c2, _ := newContext(e, ck)
	if _, err := m.Read(c2); err != ErrNoCookie {
		t.Fatalf("expected ErrNoCookie for expired cookie, got %v", err)
	}
}

func TestDestroy(t *testing.T) {
	e := echo.New()
	m := NewCookieManager("a-long-enough-secret", "_fishmart_session", false, time.Hour)

	c, rec := newContext(e)
	m.Destroy(c)

	ck := issuedCookie(t, rec, "_fishmart_session")
	if ck.Value != "" || ck.Expires.After(time.Unix(1, 0)) {
		t.Fatalf("expected expired empty cookie, got %+v", ck)
	}
}
