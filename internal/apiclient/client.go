// Package apiclient is a typed HTTP client for the travel planner API.
// Error responses are mapped back onto the domain sentinel errors, so
// callers test them with errors.Is exactly as they would in-process.
package apiclient

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
	"sync"
	"time"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/domain"
)

// Client talks to one API server. It carries the session cookie issued by
// sign-in and is safe for concurrent use.
type Client struct {
	base string
	http *http.Client

	mu      sync.RWMutex
	session string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithSession restores a previously issued session cookie value.
func WithSession(token string) Option {
	return func(c *Client) { c.session = token }
}

// New returns a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	// Redirects are surfaced to the caller; the OAuth login endpoint answers
	// with one and the client never follows it.
	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	c.http = &hc
	return c
}

// Session returns the current session cookie value, empty when signed out.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// BaseURL returns the server origin the client was built for.
func (c *Client) BaseURL() string { return c.base }

// APIError is a non-2xx response. It unwraps to the domain sentinel that
// matches Code, when there is one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if s := e.sentinel(); s != nil {
		return s.Error() + ": " + e.Message
	}
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.sentinel() }

func (e *APIError) sentinel() error {
	switch e.Code {
	case "validation_error":
		return domain.ErrValidation
	case "not_found":
		return domain.ErrNotFound
	case "unauthorized":
		return domain.ErrUnauthorized
	case "forbidden":
		return domain.ErrForbidden
	case "conflict":
		return domain.ErrConflict
	}
	return nil
}

// request is one API call. body, when set, is JSON-encoded unless raw is set.
type request struct {
	method      string
	path        string
	query       url.Values
	body        any
	raw         io.Reader
	contentType string
}

// do sends req and decodes a successful JSON response into out, which may
// be nil. It returns the raw response for callers needing headers.
func (c *Client) do(ctx context.Context, req request, out any) (*http.Response, error) {
	u := c.base + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	body := req.raw
	contentType := req.contentType
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if s := c.Session(); s != "" {
		httpReq.AddCookie(&http.Cookie{Name: auth.CookieName, Value: s})
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.captureSession(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}
	if w, ok := out.(io.Writer); ok {
		_, err = io.Copy(w, resp.Body)
		return resp, err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

// captureSession records a session cookie set or cleared by the server.
func (c *Client) captureSession(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name != auth.CookieName {
			continue
		}
		c.mu.Lock()
		if ck.MaxAge < 0 || ck.Value == "" {
			c.session = ""
		} else {
			c.session = ck.Value
		}
		c.mu.Unlock()
	}
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Code != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
		return apiErr
	}
	apiErr.Code = strings.ReplaceAll(strings.ToLower(http.StatusText(resp.StatusCode)), " ", "_")
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}

// wrap prefixes err with the calling method, keeping it unwrappable.
func wrap(method string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("apiclient.Client.%s: %w", method, err)
}

// IsUnauthorized reports whether err means the session is missing or expired.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}
