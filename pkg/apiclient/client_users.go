package apiclient

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyToken is returned when login or register succeeds without a token.
	ErrEmptyToken = errors.New("apiclient: server returned an empty token")

	// ErrMalformedResponse is returned when a 2xx body lacks a required object.
	ErrMalformedResponse = errors.New("apiclient: malformed response")
)

// LoginToken resolves the user owning the bearer token.
func (c *Client) LoginToken(ctx context.Context) (UserPayload, error) {
	var resp LoginTokenResponse
	if err := c.Get(ctx, "/users/loginToken", &resp); err != nil {
		return UserPayload{}, err
	}
	if resp.User == nil {
		return UserPayload{}, fmt.Errorf("%w: GET /users/loginToken has no user", ErrMalformedResponse)
	}
	return *resp.User, nil
}

// CheckAdmin asks the server whether roleID is an admin role.
func (c *Client) CheckAdmin(ctx context.Context, roleID int64) (bool, error) {
	var resp CheckAdminResponse
	if err := c.Post(ctx, "/users/check-admin", CheckAdminRequest{RoleID: roleID}, &resp); err != nil {
		return false, err
	}
	return resp.IsAdmin, nil
}

// Login exchanges credentials for a token. It does not persist anything;
// hand the token to the session for that.
func (c *Client) Login(ctx context.Context, name, password string) (string, error) {
	return c.requestToken(ctx, "/users/login", LoginRequest{Name: name, Password: password})
}

// Register creates a customer account and returns a token for it.
func (c *Client) Register(ctx context.Context, name, password string) (string, error) {
	return c.requestToken(ctx, "/users/register", RegisterRequest{Name: name, Password: password})
}

func (c *Client) requestToken(ctx context.Context, path string, body any) (string, error) {
	var resp TokenResponse
	if err := c.Post(ctx, path, body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrEmptyToken
	}
	return resp.Token, nil
}
