// Package api implements the client for the remote case-management REST API.
// Every call injects the bearer credential of this client instance explicitly;
// there is no process-wide default header, so independent sessions can coexist.
package api

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

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was rejected.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnavailable indicates that the auth collaborator could not be reached.
	ErrUnavailable = errors.New("authentication service unavailable")
	// ErrFetch indicates that a data load from the backend failed.
	ErrFetch = errors.New("failed to load data")
	// ErrValidation indicates that the backend rejected a request payload.
	ErrValidation = errors.New("invalid request payload")
)

// requestTimeout bounds every remote call; the backend's own timeout behavior
// is not specified.
const requestTimeout = 15 * time.Second

// Client talks to the case-management backend. The zero value is not usable;
// construct it with New.
type Client struct {
	http *http.Client

	mu      sync.RWMutex
	baseURL string
	token   string
}

// New creates a client for the backend at baseURL (no trailing slash needed).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetBaseURL repoints the client at another backend. Calls already in flight
// keep the URL they started with.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// BaseURL returns the backend address currently targeted.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetToken installs the bearer credential used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the installed bearer credential.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently installed bearer credential, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues a JSON request and decodes the response into out (if non-nil).
// HTTP status codes are translated into the package's error taxonomy; the
// caller wraps transport failures into the flavor that fits the operation.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.BaseURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrValidation, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("%w: %s", ErrValidation, readAPIError(resp.Body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, readAPIError(resp.Body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrValidation, err)
		}
	}
	return nil
}

// readAPIError extracts the backend's error detail, falling back to the raw body.
func readAPIError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no error detail"
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}

// fetchErr wraps transport-level failures of data loads into ErrFetch while
// keeping the validation and credential errors recognizable.
func fetchErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidCredentials) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrFetch, err)
}
