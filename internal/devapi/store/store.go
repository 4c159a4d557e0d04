package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/devapi/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories per table.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByName is used by password login.
	GetUserByName(ctx context.Context, name string) (domain.User, error)

	// CreateUser inserts u and returns the assigned id. A duplicate name
	// yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// CountByRole reports how many users hold roleID.
	CountByRole(ctx context.Context, roleID int64) (int, error)
}

type Roles interface {
	GetRoleByID(ctx context.Context, id int64) (domain.Role, error)
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)
}
