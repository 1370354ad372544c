package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Annoursuccesacademy/finfit-schuldbeheer/pkg/models"
)

// Login exchanges credentials for a session. A 401 maps to
// ErrInvalidCredentials; any other failure maps to ErrUnavailable.
// The returned session's token is not installed on the client; the session
// store decides when to do that.
func (c *Client) Login(ctx context.Context, username, password string) (models.Session, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.Token == "" {
		return models.Session{}, fmt.Errorf("%w: login response missing token", ErrValidation)
	}
	return models.Session{Token: resp.Token, User: resp.User, IssuedAt: time.Now()}, nil
}

// Verify asks the backend whether the installed token is still valid.
// An explicit 401 counts as an invalid verdict rather than a transport error;
// other failures are returned so the caller can apply its own policy.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, nil, &resp); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.Valid, nil
}
