// Package api implements the authenticated request path to the remote
// ledger service. Every call goes through a single function that obtains
// a bearer credential, attaches it, and classifies non-success responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// RemoteError reports a non-success response from the ledger service.
// Body carries the best-effort response text for observability.
type RemoteError struct {
	Body   string
	Status int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote call failed: %d - %s", e.Status, e.Body)
}

// Client issues authenticated JSON requests against the ledger service.
type Client struct {
	tokens     oauth2.TokenSource
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Used by tests and
// by callers that need custom transport behavior.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a ledger service client. The token source is consulted on
// every request; it may block while a credential is fetched or refreshed.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do performs one authenticated request. The endpoint is relative to the
// configured base URL. A non-nil body is JSON-encoded. On a 2xx response
// the raw body is returned (it may be empty; update endpoints respond
// with no content). Any other status yields a *RemoteError. A failed
// credential fetch yields an error wrapping common.ErrCredentialUnavailable.
//
// No retries happen here: every failure is surfaced to the caller.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCredentialUnavailable, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	common.LogDebug("Calling ledger service", common.Fields{
		"method":   method,
		"endpoint": endpoint,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ledger service: %w", err)
	}
	defer resp.Body.Close()

	// Read the body regardless of status: error text rides on it.
	data, err := io.ReadAll(resp.Body)
	if err != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	return data, nil
}
