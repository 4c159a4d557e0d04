package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/devapi/domain"
	"github.com/aussiebroadwan/storefront/internal/devapi/store"
	"github.com/aussiebroadwan/storefront/internal/devapi/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "devapi.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMigrationsSeedRoles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	admin, err := st.Roles().GetRoleByID(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, domain.Role{ID: 1, Name: "admin", IsAdmin: true}, admin)

	customer, err := st.Roles().GetRoleByName(ctx, "customer")
	require.NoError(t, err)
	require.Equal(t, domain.Role{ID: 2, Name: "customer", IsAdmin: false}, customer)

	_, err = st.Roles().GetRoleByID(ctx, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Re-applying is a no-op.
	require.NoError(t, st.ApplyMigrations())
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	id, err := st.Users().CreateUser(ctx, domain.User{Name: "ana", PasswordHash: "h", RoleID: domain.RoleCustomer})
	require.NoError(t, err)
	require.Positive(t, id)

	byID, err := st.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "ana", byID.Name)
	require.Equal(t, domain.RoleCustomer, byID.RoleID)
	require.False(t, byID.CreatedAt.IsZero())

	byName, err := st.Users().GetUserByName(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)

	_, err = st.Users().CreateUser(ctx, domain.User{Name: "ana", PasswordHash: "h", RoleID: domain.RoleCustomer})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, id+100)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().CreateUser(ctx, domain.User{Name: "bea", PasswordHash: "h", RoleID: 42})
	require.Error(t, err, "unknown role violates the foreign key")

	count, err := st.Users().CountByRole(ctx, domain.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Store) error {
		_, err := tx.Users().CreateUser(ctx, domain.User{Name: "ghost", PasswordHash: "h", RoleID: domain.RoleAdmin})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByName(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.WithTx(ctx, func(tx store.Store) error {
		_, err := tx.Users().CreateUser(ctx, domain.User{Name: "kept", PasswordHash: "h", RoleID: domain.RoleAdmin})
		return err
	}))
	_, err = st.Users().GetUserByName(ctx, "kept")
	require.NoError(t, err)
}
