package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/storefront/internal/devapi/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Users() store.Users { return &usersRepo{q: t.tx} }
func (t *txStore) Roles() store.Roles { return &rolesRepo{q: t.tx} }

func (t *txStore) WithTx(context.Context, func(store.Store) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error     { return nil } // applied before any tx starts
func (t *txStore) Close() error               { return nil } // the outer DB stays open
func (t *txStore) Ping(context.Context) error { return nil }
