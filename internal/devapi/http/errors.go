package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// APIError is a canned error response.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string { return e.Code + ": " + e.Description }

// WriteError writes e as an {"error","error_description"} body.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// withDescription returns a copy of e with a request-specific description.
func (e *APIError) withDescription(desc string) *APIError {
	c := *e
	c.Description = desc
	return &c
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "the request body is malformed",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_grant",
		Description: "invalid name or password",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_token",
		Description: "the access token does not identify a user",
	}

	ErrNameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        "name_taken",
		Description: "that name is already registered",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "the server encountered an unexpected condition",
	}
)
