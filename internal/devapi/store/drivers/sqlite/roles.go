package sqlite

import (
	"context"

	"github.com/aussiebroadwan/storefront/internal/devapi/domain"
)

type rolesRepo struct {
	q querier
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	return scanRole(r.q.QueryRowContext(ctx, `SELECT id, name, is_admin FROM roles WHERE id = ?`, id))
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	return scanRole(r.q.QueryRowContext(ctx, `SELECT id, name, is_admin FROM roles WHERE name = ?`, name))
}

func scanRole(row rowScanner) (domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.IsAdmin); err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}
