package client

import (
	"context"
	"net/http"
)

// Login exchanges credentials for an access token. It is the one
// unauthenticated call; callers typically install the returned token via
// SetTokenSource.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp, "failed to log in"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the authenticated user's account
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp, "failed to load profile"); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
