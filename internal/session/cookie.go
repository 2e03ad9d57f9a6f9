// Package session issues and reads the gateway's browser credential: an
// HS256-signed cookie carrying nothing but a session id and expiry. The
// backend bearer token never reaches the browser; it stays in the
// credential store keyed by this id.
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var ErrNoCookie = errors.New("session cookie missing or invalid")

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieManager signs and verifies the session cookie.
type CookieManager struct {
	secret   []byte
	name     string
	secure   bool
	lifetime time.Duration
}

func NewCookieManager(secret, name string, secure bool, lifetime time.Duration) *CookieManager {
	return &CookieManager{secret: []byte(secret), name: name, secure: secure, lifetime: lifetime}
}

// NewSessionID mints an id for a fresh session.
func NewSessionID() string {
	return uuid.NewString()
}

// Issue sets the session cookie for the given session id.
func (m *CookieManager) Issue(c echo.Context, sessionID string) error {
	expiry := time.Now().Add(m.lifetime)
	claims := &cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     m.name,
		Value:    signed,
		Path:     "/",
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiry,
	})
	return nil
}

// Read returns the session id carried by the request's cookie. A missing,
// expired, or tampered cookie reads as ErrNoCookie — callers mint a fresh
// anonymous session instead of failing the request.
func (m *CookieManager) Read(c echo.Context) (string, error) {
	cookie, err := c.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return "", ErrNoCookie
	}

	claims := new(cookieClaims)
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrNoCookie
	}
	return claims.SessionID, nil
}

// Destroy expires the session cookie.
func (m *CookieManager) Destroy(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// Name returns the cookie name so the proxy can strip it from forwarded
// requests.
func (m *CookieManager) Name() string { return m.name }
