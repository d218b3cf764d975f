package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/cinex-booking/internal/domain"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultMaxTries      = 3
	defaultRetryInterval = 200 * time.Millisecond
	maxErrorBodyBytes    = 64 << 10

	headerRequestID      = "X-Request-Id"
	headerIdempotencyKey = "Idempotency-Key"
)

// Client talks to the booking API. It is safe for concurrent use.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenProvider
	validator     *validator.Validate
	logger        *slog.Logger
	maxTries      uint
	retryInterval time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetry configures retries of idempotent calls. maxTries counts the
// first attempt, so 1 disables retrying.
func WithRetry(maxTries uint, initialInterval time.Duration) Option {
	return func(c *Client) {
		c.maxTries = maxTries
		c.retryInterval = initialInterval
	}
}

func New(baseURL string, tokens TokenProvider, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid booking api url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("booking api url must be absolute, got %q", baseURL)
	}

	if tokens == nil {
		return nil, errors.New("booking api client requires a token provider")
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:        tokens,
		validator:     appvalidator.NewValidator(),
		logger:        slog.Default(),
		maxTries:      defaultMaxTries,
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxTries == 0 {
		c.maxTries = 1
	}

	return c, nil
}

type call struct {
	op     string
	kind   opKind
	method string
	path   string
	body   any
	out    any

	// retryable calls are safe to repeat: reads and idempotent cleanup.
	retryable bool
	// idempotencyKey adds a fresh Idempotency-Key header, shared by retries.
	idempotencyKey bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	var payload []byte
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return &APIError{Op: cl.op, Err: fmt.Errorf("%w: %w", domain.ErrValidation, err)}
		}
		payload = data
	}

	var idempotencyKey string
	if cl.idempotencyKey {
		idempotencyKey = uuid.NewString()
	}

	if !cl.retryable || c.maxTries == 1 {
		return c.send(ctx, cl, payload, idempotencyKey)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := c.send(ctx, cl, payload, idempotencyKey)
		if err != nil && !errors.Is(err, domain.ErrUpstream) {
			return struct{}{}, backoff.Permanent(err)
		}

		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.maxTries))

	return err
}

func (c *Client) send(ctx context.Context, cl call, payload []byte, idempotencyKey string) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrAuthenticationRequired) {
			err = fmt.Errorf("%w: %w", domain.ErrAuthenticationRequired, err)
		}
		return &APIError{Op: cl.op, Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return &APIError{Op: cl.op, Err: fmt.Errorf("%w: %w", domain.ErrValidation, err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(headerRequestID, requestID(ctx))

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if idempotencyKey != "" {
		req.Header.Set(headerIdempotencyKey, idempotencyKey)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &APIError{Op: cl.op, Err: ctx.Err()}
		}

		c.logger.Warn("booking api request failed", "op", cl.op, "error", err)
		return &APIError{Op: cl.op, Err: fmt.Errorf("%w: %w", domain.ErrUpstream, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("booking api call",
		"op", cl.op,
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return readError(cl, resp)
	}

	if cl.out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(cl.out)
	if err != nil {
		return &APIError{
			Op:     cl.op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%w: malformed response: %w", domain.ErrUpstream, err),
		}
	}

	return nil
}

func readError(cl call, resp *http.Response) error {
	var eb errorBody

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil && len(data) > 0 {
		// Error bodies are informative only; the status decides when they
		// are not JSON.
		_ = json.Unmarshal(data, &eb)
	}

	return &APIError{
		Op:      cl.op,
		Status:  resp.StatusCode,
		Code:    eb.Code,
		Message: eb.Message,
		Err:     classify(cl.kind, resp.StatusCode, eb.Code),
	}
}

func (c *Client) validate(op string, input any) error {
	err := c.validator.Struct(input)
	if err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("%w: %w", domain.ErrValidation, err)}
	}

	return nil
}

func requireSessionID(op, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return &APIError{Op: op, Err: fmt.Errorf("%w: session id is required", domain.ErrValidation)}
	}

	return nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}

	return uuid.NewString()
}
