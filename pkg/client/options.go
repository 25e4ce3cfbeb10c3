package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Option configures the client.
type Option func(*Client)

// WithEndpoint overrides the registration URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithHTTPClient injects a custom HTTP client (proxies, transports, tests).
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout caps each submission. Applied to the current HTTP client, so
// pass it after WithHTTPClient when combining both.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout <= 0 {
			return
		}
		clone := *c.httpClient
		clone.Timeout = timeout
		c.httpClient = &clone
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDGenerator overrides how correlation ids are produced.
func WithRequestIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}
