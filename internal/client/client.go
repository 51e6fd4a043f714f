package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"employee-portal/internal/config"
	apperrors "employee-portal/internal/errors"
	"employee-portal/internal/logger"
)

// TokenSource supplies the bearer token attached to every request. The
// session subsystem owns the token lifecycle; the client only assumes its
// presence (a nil source issues unauthenticated requests, used by Login).
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource holding a fixed token
type StaticToken string

// Token returns the fixed token
func (t StaticToken) Token() (string, error) {
	return string(t), nil
}

// Client issues typed HTTP calls against the portal REST API and unwraps the
// JSON envelopes into domain records. Calls do not retry; the transport
// timeout is the only deadline besides the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a portal API client from configuration
func NewClient(cfg *config.Config, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.APITimeout()},
		tokens:     tokens,
	}
}

// SetTokenSource replaces the token source, used after a successful login
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// envelope is the error body shape shared by all portal endpoints
type envelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes one API call. A non-2xx response is decoded into the error
// envelope and surfaced as an APIError carrying the server's message, or
// fallback when the body had none. Transport failures wrap the underlying
// error with the same fallback string.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, fallback string) error {
	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"method": method,
		"path":   path,
	})

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", fallback, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", fallback, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log.Debug("portal API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("portal API request failed: %v", err)
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	log.Debugf("portal API response: status=%d", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var env envelope
		_ = json.Unmarshal(raw, &env)

		message := env.Message
		if message == "" {
			message = env.Error
		}
		if message == "" {
			message = fallback
		}

		log.Errorf("portal API error: status=%d message=%s", resp.StatusCode, message)
		return &apperrors.APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Errorf("failed to decode portal API response: %v", err)
			return fmt.Errorf("%s: %w", fallback, err)
		}
	}

	return nil
}
