// Package tokenstore holds the persisted token: one durable key/value slot
// that survives restarts of the storefront. It is the source of truth for
// whether there is a prior session to resume.
package tokenstore

import "context"

// DefaultKey names the slot the token lives in.
const DefaultKey = "authToken"

// Store is implemented by the drivers under drivers/.
type Store interface {
	// Get returns the token and ok=true when one is stored. A missing token
	// is not an error.
	Get(ctx context.Context) (token string, ok bool, err error)

	// Set overwrites the slot.
	Set(ctx context.Context, token string) error

	// Delete clears the slot. Deleting an empty slot succeeds.
	Delete(ctx context.Context) error

	Close() error
}
