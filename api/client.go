package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phaetex/efootball-client/models"
)

// Client is the JSON-over-HTTP binding to the tournament backend. It
// attaches the bearer token from its TokenSource when one is held and
// maps failures onto the error taxonomy in errors.go.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokenSource wires the session service in after construction; the
// two reference each other, so one side has to be set late.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *Client) TournamentConfig(ctx context.Context) (models.TournamentConfig, error) {
	var cfg models.TournamentConfig
	if err := c.do(ctx, http.MethodGet, "/tournament/config", nil, &cfg); err != nil {
		return models.TournamentConfig{}, err
	}
	return cfg, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var resp MeResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateMe(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) PendingPayments(ctx context.Context) ([]models.PendingPayment, error) {
	var resp struct {
		Payments []models.PendingPayment `json:"payments"`
	}
	if err := c.do(ctx, http.MethodGet, "/payments/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payments, nil
}

func (c *Client) VerifyPayment(ctx context.Context, id int, action VerifyAction) error {
	body := struct {
		Action VerifyAction `json:"action"`
	}{Action: action}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/payments/%d/verify", id), body, nil)
}

func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/admins", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	path := "/users/list"
	if role != "" {
		path += "?role=" + url.QueryEscape(string(role))
	}
	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// errorFromResponse prefers the backend's own error message; an absent
// or unreadable body falls back to the transport status text.
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", message, ErrUnauthenticated)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", message, ErrForbidden)
	}
	return &RemoteError{StatusCode: resp.StatusCode, Message: message}
}
