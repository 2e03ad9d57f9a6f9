// Package upstream is the HTTP client for the fish-market ordering backend.
// The gateway consumes its auth surface and forwards everything else.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fishmart/gateway/internal/core/domain"
	"github.com/fishmart/gateway/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// Client implements ports.AuthClient and ports.DeliveryClient against the
// backend's REST API. Every operation is a single request; retries are left
// to the user resubmitting.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// wireIdentity is the backend's user payload. Role is validated before it
// becomes a domain.Identity.
type wireIdentity struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phonenumber"`
	Role            string `json:"role"`
	BikeNumberPlate string `json:"bike_number_plate"`
}

func (w wireIdentity) toDomain() (*domain.Identity, error) {
	role, err := domain.ParseRole(w.Role)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{
		ID:              w.ID,
		Name:            w.Name,
		Email:           w.Email,
		Phone:           w.Phone,
		Role:            role,
		BikeNumberPlate: w.BikeNumberPlate,
	}, nil
}

type authExchangeResponse struct {
	User  wireIdentity `json:"user"`
	Token string       `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Identity, string, error) {
	return c.exchange(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (*domain.Identity, string, error) {
	return c.exchange(ctx, "/auth/register", map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	})
}

func (c *Client) RiderLogin(ctx context.Context, phone, accessCode string) (*domain.Identity, string, error) {
	return c.exchange(ctx, "/auth/rider-login", map[string]string{
		"phonenumber": phone,
		"accessCode":  accessCode,
	})
}

// exchange performs one credential-for-token POST. Any non-2xx status is a
// rejection, not a transport failure.
func (c *Client) exchange(ctx context.Context, path string, payload any) (*domain.Identity, string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "", payload)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return nil, "", fmt.Errorf("%w: %s returned %d", domain.ErrAuthRejected, path, resp.StatusCode)
	}

	var body authExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("%w: decoding %s response: %v", domain.ErrUpstreamUnavailable, path, err)
	}
	identity, err := body.User.toDomain()
	if err != nil {
		return nil, "", err
	}
	return identity, body.Token, nil
}

func (c *Client) Me(ctx context.Context, token string) (*domain.Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return nil, fmt.Errorf("%w: /auth/me returned %d", domain.ErrTokenInvalid, resp.StatusCode)
	}

	var body wireIdentity
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding /auth/me response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return body.toDomain()
}

func (c *Client) Logout(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: /auth/logout returned %d", domain.ErrAuthRejected, resp.StatusCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamUnavailable, method, path, err)
	}
	return resp, nil
}

// drain empties a response body so the connection can be reused.
func drain(r io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, 1<<16))
}
