// ABOUTME: HTTP client for the sweet shop backend API
// ABOUTME: Per-instance bearer authorization, JSON codec, typed errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request issued by a client built without an
// explicit timeout option.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response body is retained.
const maxErrorBody = 1 << 20

// Client is the API client for the sweet shop backend. Each instance holds
// its own authorization state; construct one at startup and pass it
// explicitly to every caller.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	token        string
	onAuthReject func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a new API client with the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthorization sets the bearer token attached to every subsequent
// request. An empty token removes the authorization header. Requests pick up
// whatever token is set when they start; ordering between a concurrent
// SetAuthorization and in-flight requests is not guaranteed beyond that.
func (c *Client) SetAuthorization(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Authorization returns the currently configured bearer token, empty when
// the client is anonymous.
func (c *Client) Authorization() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetOnAuthReject registers a hook invoked when the backend answers 401 to a
// request that carried session credentials. The session layer uses it to
// apply one uniform forced-logout policy. A 403 never triggers the hook
// (that caller is authenticated, just not allowed), and neither does a 401
// from the unauthenticated login/register endpoints: a credentials rejection
// there says nothing about the stored session.
func (c *Client) SetOnAuthReject(fn func()) {
	c.mu.Lock()
	c.onAuthReject = fn
	c.mu.Unlock()
}

// Login calls POST /auth/login. The endpoint is unauthenticated, so no
// stored token is attached: logging in again with bad credentials must not
// look like an expired session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doUnauth(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register calls POST /auth/register, unauthenticated like Login. The
// backend may or may not issue a token on success; callers must check
// AuthResponse.Token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.doUnauth(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSweets calls GET /sweets.
func (c *Client) ListSweets(ctx context.Context) ([]Sweet, error) {
	var sweets []Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets", nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

// CreateSweet calls POST /sweets. Admin only; the backend enforces that.
func (c *Client) CreateSweet(ctx context.Context, input *SweetInput) (*Sweet, error) {
	var sweet Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets", input, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// UpdateSweet calls PUT /sweets/:id. Admin only.
func (c *Client) UpdateSweet(ctx context.Context, id string, input *SweetInput) (*Sweet, error) {
	var sweet Sweet
	if err := c.do(ctx, http.MethodPut, "/sweets/"+url.PathEscape(id), input, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

// DeleteSweet calls DELETE /sweets/:id. Admin only.
func (c *Client) DeleteSweet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sweets/"+url.PathEscape(id), nil, nil)
}

// PurchaseSweet calls POST /sweets/:id/purchase. The backend decrements
// stock and returns the authoritative new item state.
func (c *Client) PurchaseSweet(ctx context.Context, id string, quantity int) (*Sweet, error) {
	var sweet Sweet
	err := c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/purchase", purchaseRequest{Quantity: quantity}, &sweet)
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

// do issues one request with the current session credentials attached.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

// doUnauth issues one request without session credentials, for endpoints
// that do not take them. A 401 from such a request never trips the
// auth-reject hook.
func (c *Client) doUnauth(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, false)
}

// send issues one request. The body is JSON-encoded when present and the
// response JSON-decoded into out when out is non-nil; a success response
// that does not declare a JSON content type is surfaced with its raw text.
// Non-2xx responses come back as *Error, unreachable backends as
// *TransportError.
func (c *Client) send(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	sentAuth := false
	if withAuth {
		if token := c.Authorization(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			sentAuth = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	// A 401 means "session expired" only when the request actually
	// presented the session.
	if resp.StatusCode == http.StatusUnauthorized && sentAuth {
		c.notifyAuthReject()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("expected JSON from backend, got: %s", strings.TrimSpace(string(raw)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages and
// everything else to a TransportError.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return &TransportError{URL: c.baseURL, Err: err}
}

// handleErrorResponse parses a non-success response into an *Error. The body
// is decoded as JSON when the backend declares a JSON content type, otherwise
// kept as raw text.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &Error{
		Status: resp.StatusCode,
		Body:   string(body),
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Message
			if apiErr.Message == "" {
				apiErr.Message = payload.Error
			}
		}
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

func (c *Client) notifyAuthReject() {
	c.mu.RLock()
	fn := c.onAuthReject
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
