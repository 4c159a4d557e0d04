/*
Package apiclient is the storefront's HTTP client for the shop API.

# Overview

A Client is built once from a Config. The base address and timeout are fixed
at construction; individual calls cannot override them.

	client := apiclient.New(apiclient.Config{
		BaseURL: "http://localhost:3000/app",
		Timeout: 10 * time.Second,
		Tokens:  tokens, // anything with Get(ctx) (string, bool, error)
	})

	user, err := client.LoginToken(ctx)

# Request interceptors

Every outgoing request passes through the same interceptor chain before it is
sent:

 1. Content-Type and Accept are set to application/json
 2. X-Request-ID is set to a fresh ULID
 3. Authorization: Bearer <token> is set when the TokenSource holds a token
 4. Interceptors registered with Use, in registration order

The token is read from the TokenSource on every call, so logging in or out
elsewhere in the process takes effect on the next request. A missing token is
not an error; the request simply goes out unauthenticated.

# Errors

Calls fail with one of two typed errors:

  - *NetworkError: the request could not be sent or the response could not be
    read (includes timeouts and context cancellation)
  - *HTTPStatusError: the server answered with a non-2xx status

	var statusErr *apiclient.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		// token rejected
	}

# Throttling

Setting Config.RequestsPerSecond above zero makes every call wait on a token
bucket before sending. A wait cut short by the context is reported as a
NetworkError.
*/
package apiclient
