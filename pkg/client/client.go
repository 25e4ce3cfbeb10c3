package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
)

const (
	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 10 * time.Second
	// RequestIDHeader carries the per-submission correlation id.
	RequestIDHeader = "X-Request-Id"

	maxResponseBytes = 1 << 20
)

// Response is a successful reply from the registration endpoint.
type Response struct {
	StatusCode int
	Message    string
	RequestID  string
}

// ServerError is a non-2xx reply from the registration endpoint.
type ServerError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: server responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("client: server responded %d: %s", e.StatusCode, e.Message)
}

// ServerMessage returns the message from the response body.
func (e *ServerError) ServerMessage() string {
	return e.Message
}

// Client posts registration payloads as JSON.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	requestID  func() string
}

var _ form.Submitter = (*Client)(nil)

// New constructs a client targeting the default endpoint.
func New(options ...Option) *Client {
	c := &Client{
		endpoint:   model.DefaultEndpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		requestID:  uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Endpoint reports the URL submissions are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit implements form.Submitter.
func (c *Client) Submit(ctx context.Context, state form.State) (string, error) {
	resp, err := c.Post(ctx, state)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Post sends payload to the endpoint. Non-2xx replies return a *ServerError
// carrying the message from the response body.
func (c *Client) Post(ctx context.Context, payload any) (Response, error) {
	if ctx == nil {
		return Response{}, errors.New("client: context is required")
	}
	if strings.TrimSpace(c.endpoint) == "" {
		return Response{}, errors.New("client: endpoint is required")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("client: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("client: request: %w", err)
	}
	requestID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("registration request failed",
			"endpoint", c.endpoint,
			"request_id", requestID,
			"error", err,
		)
		return Response{}, fmt.Errorf("client: do request: %w", err)
	}
	defer resp.Body.Close()

	message, decodeErr := decodeMessage(resp.Body)
	c.logger.Debug("registration response",
		"endpoint", c.endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    message,
			RequestID:  requestID,
		}
	}
	if decodeErr != nil {
		return Response{}, fmt.Errorf("client: decode response: %w", decodeErr)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Message:    message,
		RequestID:  requestID,
	}, nil
}

type messageBody struct {
	Message string `json:"message"`
}

func decodeMessage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxResponseBytes))
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}
	var body messageBody
	if err := json.Unmarshal(data, &body); err != nil {
		return "", err
	}
	return strings.TrimSpace(body.Message), nil
}
