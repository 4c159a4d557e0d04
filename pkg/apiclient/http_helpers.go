package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.baseURL + path
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Do sends a request through the interceptor chain. A nil body sends no
// payload and a nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for _, intercept := range c.chain() {
		if err := intercept(req); err != nil {
			return fmt.Errorf("request interceptor: %w", err)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Method: method, Path: path, Err: err}
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: err}
	}

	return decodeJSON(resp, method, path, out)
}

func (c *Client) chain() []Interceptor {
	chain := make([]Interceptor, 0, 3+len(c.interceptors))
	chain = append(chain, jsonHeaders, requestID, c.bearerToken)
	return append(chain, c.interceptors...)
}

func jsonHeaders(req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return nil
}

func requestID(req *http.Request) error {
	req.Header.Set(slogx.RequestIDHeader, idx.New().String())
	return nil
}

// bearerToken attaches the persisted token when there is one. Storage
// failures downgrade the request to unauthenticated instead of failing it.
func (c *Client) bearerToken(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}

	token, ok, err := c.tokens.Get(req.Context())
	if err != nil {
		c.logger.Warn("failed to read persisted token, sending unauthenticated",
			"path", req.URL.Path,
			"err", err,
		)
		return nil
	}
	if !ok || token == "" {
		return nil
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// decodeJSON reads the response once, returns a typed error for non-2xx
// statuses and otherwise decodes into out.
func decodeJSON(resp *http.Response, method, path string, out any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(resp, bodyBytes)
	}

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
