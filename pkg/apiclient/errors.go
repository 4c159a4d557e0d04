package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// NetworkError means the request never produced a usable response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was the client timeout or a context
// deadline.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// HTTPStatusError is returned for any non-2xx response.
type HTTPStatusError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *HTTPStatusError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("http %d: %s: %s", e.StatusCode, e.Code, e.Description)
}

// parseErrorResponse maps a failed response to an HTTPStatusError, using the
// JSON error body when the server sent one.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &HTTPStatusError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Code:        "http_error",
		Description: http.StatusText(resp.StatusCode),
	}
}

// IsStatus reports whether err is an HTTPStatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
