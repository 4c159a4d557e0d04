package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/devapi/store"
)

type RolesService struct {
	Store store.Store
}

// IsAdmin reports whether roleID names an admin role. Unknown roles are
// not admin.
func (s *RolesService) IsAdmin(ctx context.Context, roleID int64) (bool, error) {
	role, err := s.Store.Roles().GetRoleByID(ctx, roleID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role.IsAdmin, nil
}
