// Package remote is the typed client of the liteboard REST store. It is the
// only component of the board client that touches the network.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"liteboard/internal/domain"
	"liteboard/internal/httputil"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client issues single-attempt JSON requests. Credentials travel as the
// session cookie; any 401 fires the session-expired hook and returns
// domain.ErrSessionExpired. Safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger

	sessionToken string
	onExpired    func()
	expiredOnce  sync.Once
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. A cookie jar is added when
// the client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithSessionToken preloads the session cookie, e.g. from a saved profile.
func WithSessionToken(token string) Option {
	return func(c *Client) { c.sessionToken = token }
}

// WithSessionExpiredHook installs the reaction to a 401. It runs at most once
// per Client, on the goroutine that saw the first 401.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// New creates a client for the store at baseURL (scheme and host, optional path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc := *c.http
		hc.Jar = jar
		c.http = &hc
	}
	if c.sessionToken != "" {
		c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{
			Name:  httputil.SessionCookie,
			Value: c.sessionToken,
			Path:  "/",
		}})
	}

	return c, nil
}

// SessionToken returns the session cookie currently held for the store, if any.
func (c *Client) SessionToken() string {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == httputil.SessionCookie {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) sessionExpired() {
	c.expiredOnce.Do(func() {
		c.logger.Warn("session expired")
		if c.onExpired != nil {
			c.onExpired()
		}
	})
}

// do sends one request and decodes a 2xx body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return &domain.NetworkError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.NetworkError{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.sessionExpired()
		return domain.ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		return &domain.NotFoundError{Message: errorMessage(resp, data)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &domain.NetworkError{Status: resp.StatusCode, Message: errorMessage(resp, data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &domain.NetworkError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}

// errorMessage surfaces the server's "error" field verbatim, else a generic status line.
func errorMessage(resp *http.Response, body []byte) string {
	var envelope httputil.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
