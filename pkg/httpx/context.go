package httpx

import (
	"context"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyRoleID ctxKey = "role_id"
	CtxKeyClaims ctxKey = "claims"
)

// UserIDFromContext returns the user id injected by AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(int64)
	return id, ok
}

// RoleIDFromContext returns the role id carried by the verified token.
func RoleIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyRoleID).(int64)
	return id, ok
}

func contextWithAuth(ctx context.Context, userID int64, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeyRoleID, c.RoleID)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
