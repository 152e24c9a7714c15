// Package api is the single choke point for every backend call: it applies
// the base URL, session cookies, JSON encoding, snake/camel key mapping and
// error classification, and exposes one typed service per remote resource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"postcraft/internal/casemap"
	"postcraft/pkg/passwordless"
)

const defaultErrorMessage = "An error occurred while processing your request"

// Client executes requests against the backend API. All resource services
// delegate to it; it performs no retries, leaving retry policy to the cache
// layer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	BusinessProfiles *BusinessProfilesService
	PostIdeas        *PostIdeasService
	Posts            *PostsService
	SocialProfiles   *SocialProfilesService
	Auth             *AuthService
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests mostly).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithPasswordlessProvider wires the OTP collaborator used by the auth
// service.
func WithPasswordlessProvider(p passwordless.Provider) ClientOption {
	return func(c *Client) { c.Auth.provider = p }
}

// NewClient constructs a client rooted at baseURL. The cookie jar carries the
// backend session cookie across calls.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client-level timeout: callers bound requests via context.
		httpClient: &http.Client{Jar: jar},
		logger:     slog.Default(),
	}
	c.BusinessProfiles = &BusinessProfilesService{client: c}
	c.PostIdeas = &PostIdeasService{client: c}
	c.Posts = &PostsService{client: c}
	c.SocialProfiles = &SocialProfilesService{client: c}
	c.Auth = &AuthService{client: c}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type callOptions struct {
	skipTransform bool
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

// SkipTransform disables snake/camel key mapping for payloads that must stay
// in wire format.
func SkipTransform() CallOption {
	return func(o *callOptions) { o.skipTransform = true }
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodPatch, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts []CallOption) error {
	o := callOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	var reader io.Reader
	if body != nil {
		data, err := encodeBody(body, o.skipTransform)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			c.logger.Warn("transport failure", "method", method, "path", path, "error", err)
			return NewNetworkError(networkFailureMessage)
		}
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(networkFailureMessage)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := extractErrorMessage(raw, resp.StatusCode)
		c.logger.Debug("request failed", "method", method, "path", path, "status", resp.StatusCode)
		return Classify(resp.StatusCode, message)
	}
	if out == nil {
		return nil
	}
	return decodeBody(raw, out, o.skipTransform)
}

// encodeBody marshals body and rewrites its keys to snake_case unless the
// transform is skipped.
func encodeBody(body any, skipTransform bool) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	if skipTransform {
		return data, nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}
	return json.Marshal(casemap.ToSnake(decoded))
}

// decodeBody parses raw JSON, rewrites keys to camelCase unless skipped, and
// unmarshals the result into out.
func decodeBody(raw []byte, out any, skipTransform bool) error {
	if skipTransform {
		return json.Unmarshal(raw, out)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	camel, err := json.Marshal(casemap.ToCamel(decoded))
	if err != nil {
		return err
	}
	return json.Unmarshal(camel, out)
}

// extractErrorMessage pulls the backend's error field out of a failure body.
// An unparseable body yields a synthesized status-based message; a parseable
// body without an error field yields the generic default.
func extractErrorMessage(raw []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Sprintf("Server error (%d): %s", status, http.StatusText(status))
	}
	if payload.Error == "" {
		return defaultErrorMessage
	}
	return payload.Error
}
