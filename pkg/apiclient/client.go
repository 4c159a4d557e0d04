package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// TokenSource yields the persisted bearer token, if any, at call time.
type TokenSource interface {
	Get(ctx context.Context) (token string, ok bool, err error)
}

// Interceptor mutates an outgoing request before it is sent. Returning an
// error aborts the call.
type Interceptor func(req *http.Request) error

type Config struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls when positive.
	RequestsPerSecond float64

	// Tokens is consulted on every request. Nil means never authenticated.
	Tokens TokenSource

	Logger *slog.Logger
}

// Client talks to the shop API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     *slog.Logger

	interceptors []Interceptor
}

// New creates a client. Base address and timeout cannot be changed afterwards.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: cfg.Tokens,
		logger: logger,
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return c
}

// Use appends interceptors that run after the built-in ones.
func (c *Client) Use(interceptors ...Interceptor) {
	c.interceptors = append(c.interceptors, interceptors...)
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Timeout() time.Duration { return c.timeout }
