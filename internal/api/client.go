// Package api is the HTTP client for the AssistDeck backend. It owns
// transport concerns only: bearer auth, request identity, JSON bodies,
// and error mapping. Response-shape tolerance lives in internal/deck.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// TokenSource supplies the bearer token for authenticated calls.
// Implemented by session.Store.
type TokenSource interface {
	Token() string
}

// Client talks to the AssistDeck REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// expired is invoked once per 401 response on an authenticated
	// call, so the session layer can force a re-login instead of the
	// failure being silently logged.
	expired func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithExpiredHook registers the callback fired on authentication
// failures from the backend.
func WithExpiredHook(fn func()) Option {
	return func(c *Client) {
		c.expired = fn
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends a request and returns the raw response body. Non-2xx
// statuses are mapped to *APIError; transport failures are wrapped in
// *ConnectionError. Every request carries a ULID correlation ID.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	requestID := ulid.Make().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectionError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, respBody, requestID)
		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.expired != nil {
			slog.Warn("session rejected by backend",
				"path", path,
				"request_id", requestID,
			)
			c.expired()
		}
		return nil, apiErr
	}

	return respBody, nil
}

// doJSON sends a request and decodes the response into out. A nil out
// discards the body.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
