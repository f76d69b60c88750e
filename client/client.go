// Package client holds the typed resource clients for the site-tracker
// REST backend: auth, projects, folders, daily logs with attachments, and
// report download. JSON endpoints go through fast-shot; the multipart
// upload and the binary report download use a plain http.Client because
// their bodies are not JSON.
package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/opus-domini/fast-shot/constant/header"
	"go.uber.org/zap"
)

// TokenFunc supplies the current session token. It is consulted on every
// request so a login performed mid-process is picked up immediately.
type TokenFunc func() string

type Client struct {
	baseURL string
	api     fastshot.ClientHttpMethods
	raw     *http.Client
	token   TokenFunc
	log     *zap.Logger
}

// New builds a client for the backend at baseURL. token may be nil for an
// unauthenticated client (login, register, password reset).
func New(baseURL string, token TokenFunc, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	api := fastshot.NewClient(baseURL).
		Config().SetTimeout(timeout).
		Config().SetFollowRedirects(true).
		Build()

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		api:     api,
		raw:     &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

// BaseURL reports the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// headers returns the per-request header set. The session token rides on
// every request when present; the backend rejects what it must.
func (c *Client) headers() map[header.Type]string {
	h := map[header.Type]string{header.Accept: "application/json"}
	if c.token != nil {
		if t := c.token(); t != "" {
			h[header.Authorization] = "Bearer " + t
		}
	}
	return h
}

// APIError is a non-2xx response from the backend. Message is set only
// when the server sent its structured {"message": ...} envelope; pages
// fall back to their own generic text otherwise.
type APIError struct {
	Status  int
	Message string
	body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	if e.body != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.body)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

func apiErrorFromBody(status int, body []byte) *APIError {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return &APIError{Status: status, Message: envelope.Message}
	}
	return &APIError{Status: status, body: strings.TrimSpace(string(body))}
}

func parseResponse[T any](resp *fastshot.Response, result *T) error {
	defer resp.Body().Close()

	if resp.Status().IsError() {
		body, err := resp.Body().AsString()
		if err != nil {
			return fmt.Errorf("failed to read error response: %w", err)
		}
		return apiErrorFromBody(resp.Status().Code(), []byte(body))
	}

	if result == nil {
		return nil
	}
	if err := resp.Body().AsJSON(result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// discardResponse consumes a response whose body carries nothing we need.
func discardResponse(resp *fastshot.Response) error {
	return parseResponse[struct{}](resp, nil)
}
