// Package identity is an HTTP client for the managed identity provider's
// GoTrue-style REST API. The provider owns accounts, sessions and
// transactional email; this service never stores credentials itself.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tobscouts/troop-api/internal/config"
	"github.com/tobscouts/troop-api/internal/domain"
)

var (
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid access token")
)

// Error is a non-sentinel provider failure carrying the upstream response.
type Error struct {
	StatusCode int
	Msg        string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider returned %d: %v", e.StatusCode, e.Msg)
}

type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	client     *http.Client
}

// NewClient builds a client for conf.BaseURL, which must point at the
// provider's auth root (e.g. https://<project>.supabase.co/auth/v1).
func NewClient(conf *config.IdentityConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(conf.BaseURL, "/"),
		anonKey:    conf.AnonKey,
		serviceKey: conf.ServiceRoleKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type CreateUserParams struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata domain.AccountMetadata `json:"user_metadata"`
}

// UpdateUserParams carries only the fields to change; nil means untouched.
type UpdateUserParams struct {
	Email        *string                 `json:"email,omitempty"`
	EmailConfirm *bool                   `json:"email_confirm,omitempty"`
	UserMetadata *domain.AccountMetadata `json:"user_metadata,omitempty"`
}

// CreateUser registers an account through the admin API. The provider
// reports an already-registered email as a conflict, surfaced here as
// ErrDuplicateAccount so callers can answer 409 rather than 500.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (domain.Account, error) {
	var account domain.Account
	err := c.do(ctx, http.MethodPost, "/admin/users", nil, c.serviceKey, params, &account)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.Account, error) {
	var body struct {
		Users []domain.Account `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, c.serviceKey, nil, &body); err != nil {
		return nil, err
	}

	return body.Users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (domain.Account, error) {
	var account domain.Account
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id, nil, c.serviceKey, nil, &account); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (domain.Account, error) {
	var account domain.Account
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+id, nil, c.serviceKey, params, &account); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id, nil, c.serviceKey, nil, nil)
}

// Recover makes the provider send a password-reset email. The reset link
// lands on redirectTo, the front end's update-password page.
func (c *Client) Recover(ctx context.Context, email, redirectTo string) error {
	query := url.Values{}
	if redirectTo != "" {
		query.Set("redirect_to", redirectTo)
	}

	body := map[string]string{"email": email}

	return c.do(ctx, http.MethodPost, "/recover", query, c.anonKey, body, nil)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	query := url.Values{}
	query.Set("grant_type", "password")

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session domain.Session
	if err := c.do(ctx, http.MethodPost, "/token", query, c.anonKey, body, &session); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

// UserFromToken resolves the account behind an end-user access token.
func (c *Client) UserFromToken(ctx context.Context, token string) (domain.Account, error) {
	var account domain.Account
	if err := c.do(ctx, http.MethodGet, "/user", nil, token, nil, &account); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// UpdatePassword sets a new password acting as the end user, used by the
// update-password page after a recovery link sign-in.
func (c *Client) UpdatePassword(ctx context.Context, token, newPassword string) (domain.Account, error) {
	body := map[string]string{"password": newPassword}

	var account domain.Account
	if err := c.do(ctx, http.MethodPut, "/user", nil, token, body, &account); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, bearer string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("c.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapError(resp)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode -> %w", err)
	}

	return nil
}

// providerError tolerates the error shapes GoTrue has used over time.
type providerError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
	Err              string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e providerError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Err} {
		if s != "" {
			return s
		}
	}

	return ""
}

func mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body providerError
	_ = json.Unmarshal(raw, &body)

	msg := body.text()
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	switch {
	case body.ErrorCode == "email_exists",
		strings.Contains(msg, "already been registered"),
		strings.Contains(msg, "already exists"):
		return fmt.Errorf("%w: %v", ErrDuplicateAccount, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrAccountNotFound, msg)
	case resp.StatusCode == http.StatusBadRequest && strings.Contains(msg, "Invalid login credentials"),
		resp.StatusCode == http.StatusUnauthorized && resp.Request != nil && strings.HasSuffix(resp.Request.URL.Path, "/token"):
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, msg)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrInvalidToken, msg)
	}

	return &Error{StatusCode: resp.StatusCode, Msg: msg}
}
