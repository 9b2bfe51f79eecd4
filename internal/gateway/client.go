// Package gateway implements the request/response side of the platform
// boundary: one context-taking method per REST operation, all sharing a single
// envelope decoder and error taxonomy.
package gateway

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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quibbleapp/quibble-go/internal/config"
	"github.com/quibbleapp/quibble-go/internal/observability"
	"github.com/quibbleapp/quibble-go/internal/session"
)

// ErrTransport wraps network and decode failures, as opposed to business-rule
// rejections which surface as *APIError.
var ErrTransport = errors.New("gateway transport failure")

// APIError is a business-rule rejection from the server. Its message is meant
// to be shown inline to the user, never re-thrown.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// apiEnvelope mirrors the platform's common response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
}

// Client talks to the platform REST API on behalf of one session.
type Client struct {
	baseURL  string
	http     *http.Client
	session  *session.Session
	validate *validator.Validate
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// New constructs a gateway client. The session may be nil until login.
func New(cfg config.Config, sess *session.Session, validate *validator.Validate, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.APIBaseURL, "/"),
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		session:  sess,
		validate: validate,
		logger:   logger.With().Str("component", "gateway").Logger(),
		tracer:   otel.Tracer("github.com/quibbleapp/quibble-go/internal/gateway"),
	}
}

// SetSession binds the authenticated session after login.
func (c *Client) SetSession(sess *session.Session) {
	c.session = sess
}

// doJSON performs one request against the platform API: it validates the
// outgoing body, sends it with auth and correlation headers, and decodes the
// response envelope into out (which may be nil for fire-and-forget calls).
func (c *Client) doJSON(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	spanCtx, span := c.tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	))
	defer span.End()

	var reader io.Reader
	if body != nil {
		if err := c.validate.Struct(body); err != nil {
			return err
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(spanCtx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token() != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		observability.FetchFailures().WithLabelValues(operation).Inc()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		observability.FetchFailures().WithLabelValues(operation).Inc()
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		observability.FetchFailures().WithLabelValues(operation).Inc()
		return fmt.Errorf("%w: invalid response body: %v", ErrTransport, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			observability.FetchFailures().WithLabelValues(operation).Inc()
			return fmt.Errorf("%w: server error: %s", ErrTransport, message)
		}
		c.logger.Debug().Str("operation", operation).Int("status", resp.StatusCode).Str("message", message).Msg("request rejected")
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		observability.FetchFailures().WithLabelValues(operation).Inc()
		return fmt.Errorf("%w: invalid response data: %v", ErrTransport, err)
	}
	return nil
}
