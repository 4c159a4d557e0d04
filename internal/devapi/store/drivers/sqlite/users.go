package sqlite

import (
	"context"

	"github.com/aussiebroadwan/storefront/internal/devapi/domain"
	"github.com/aussiebroadwan/storefront/internal/devapi/store"
)

const userColumns = `id, name, password_hash, role_id, created_at`

type usersRepo struct {
	q querier
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByName(ctx context.Context, name string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = ?`, name)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (name, password_hash, role_id) VALUES (?, ?, ?)`,
		u.Name, u.PasswordHash, u.RoleID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *usersRepo) CountByRole(ctx context.Context, roleID int64) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role_id = ?`, roleID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.RoleID, &u.CreatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
