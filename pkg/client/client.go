// Package client is a typed Go client for the admin dashboard API. It
// attaches the bearer token from its session store to every call, retries
// transport-level failures with exponential backoff, and clears the session
// whenever the server rejects it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryBase  = time.Second
)

// Config carries the client knobs; zero values fall back to defaults.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Client wraps the HTTP API. Safe for concurrent use.
type Client struct {
	baseURL    string
	http       *http.Client
	session    *SessionStore
	timeout    time.Duration
	maxRetries int
	retryBase  time.Duration
	sleep      func(time.Duration) // replaced in tests
}

func New(cfg Config, session *SessionStore) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBase
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{},
		session:    session,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBaseDelay,
		sleep:      time.Sleep,
	}
}

// Session exposes the session store, e.g. for UI code reacting to state.
func (c *Client) Session() *SessionStore {
	return c.session
}

// --- Wire types ---

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Role struct {
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type IdentityWithRoles struct {
	User  *User    `json:"user"`
	Roles []string `json:"roles"`
}

// ProfileUpdate mirrors the partial-update contract: nil fields are omitted
// from the request body and keep their stored values.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type Upload struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// --- Auth ---

// SignUp registers a new account and stores the returned token.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	return c.authenticate(ctx, "/auth/signup", map[string]string{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	})
}

// SignIn authenticates and stores the returned token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.authenticate(ctx, "/auth/signin", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*AuthResult, error) {
	c.session.setState(StateAuthenticating)

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		c.session.setState(StateAnonymous)
		return nil, err
	}
	if err := c.session.SetToken(result.Token); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignOut clears the stored session.
func (c *Client) SignOut() error {
	return c.session.Clear()
}

// Me resolves the stored token to its identity.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp AuthResult
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// --- Profile ---

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/profiles/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, "/profiles/me", update, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, "/profiles/me/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// --- Theme ---

func (c *Client) Theme(ctx context.Context) (map[string]string, error) {
	var config map[string]string
	if err := c.do(ctx, http.MethodGet, "/theme", nil, &config); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Client) UpdateTheme(ctx context.Context, config map[string]string) error {
	body := map[string]map[string]string{"config": config}
	return c.do(ctx, http.MethodPut, "/theme", body, nil)
}

// --- User management (admin) ---

func (c *Client) ListIdentities(ctx context.Context) ([]IdentityWithRoles, error) {
	var out []IdentityWithRoles
	if err := c.do(ctx, http.MethodGet, "/admin/identities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssignRoles(ctx context.Context, identityIDs []string, role string) error {
	return c.do(ctx, http.MethodPost, "/admin/roles/assign", bulkRoleBody{identityIDs, role}, nil)
}

func (c *Client) RevokeRoles(ctx context.Context, identityIDs []string, role string) error {
	return c.do(ctx, http.MethodPost, "/admin/roles/revoke", bulkRoleBody{identityIDs, role}, nil)
}

type bulkRoleBody struct {
	IdentityIDs []string `json:"identity_ids"`
	Role        string   `json:"role"`
}

// --- Uploads ---

// UploadAvatar sends a multipart upload. Uploads bypass the JSON envelope
// and are never retried.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	return c.upload(ctx, "/upload/avatar", filename, r)
}

func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	return c.upload(ctx, "/upload/file", filename, r)
}

// DeleteAvatar removes a previously uploaded avatar object. The server
// rejects keys not prefixed by the caller's identity id.
func (c *Client) DeleteAvatar(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/upload/avatar/"+key, nil, nil)
}

func (c *Client) upload(ctx context.Context, path, filename string, r io.Reader) (*Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	var out Upload
	if err := c.decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Core request path ---

// do performs a JSON request with retry. Transport failures (connection
// errors, timeouts) are retried up to MaxRetries with delays of
// base*2^attempt; any HTTP response is terminal.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(c.retryBase << (attempt - 1))
		}

		err := c.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}

		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.Retryable {
			return err
		}
		lastErr = err

		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out any) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

func (c *Client) attachToken(req *http.Request) {
	if c.session == nil {
		return
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeResponse maps non-2xx responses to a terminal APIError carrying the
// server-supplied message when present. A 401 clears the stored session:
// the token is expired or invalid, and re-authentication is the only
// recovery.
func (c *Client) decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
			_ = c.session.Clear()
		}

		msg := serverMessage(data)
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Retryable: false}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func serverMessage(data []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
