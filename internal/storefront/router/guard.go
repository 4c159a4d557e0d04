package router

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aussiebroadwan/storefront/internal/storefront/session"
	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore"
)

// AuthGuard enforces the RequiresAuth and RequiresAdmin flags. Before
// checking them it rebuilds the in-memory session from the persisted token.
type AuthGuard struct {
	Session *session.Session
	Tokens  tokenstore.Store
	Logger  *slog.Logger

	// OnSessionExpired, if set, runs after a persisted token failed to
	// restore and the session was logged out.
	OnSessionExpired func(ctx context.Context)
}

// BeforeEach is a GuardFunc.
//
// Order matters: persisted token read, rehydrate, identify (or log out on
// failure), then the auth check, then the admin check.
func (g *AuthGuard) BeforeEach(ctx context.Context, to Route, loc Location) Decision {
	log := g.logger()

	storedToken, ok, err := g.Tokens.Get(ctx)
	if err != nil {
		log.Warn("failed to read persisted token, treating as logged out", "err", err)
		storedToken, ok = "", false
	}
	hasStored := ok && storedToken != ""

	if hasStored && !g.Session.IsAuthenticated() {
		g.Session.Rehydrate(storedToken)
	}

	if hasStored && !g.Session.Identified() {
		if err := g.Session.FetchUser(ctx); err != nil {
			log.Error("failed to restore session from guard", "to", loc.FullPath, "err", err)
			if err := g.Session.Logout(ctx); err != nil {
				log.Error("failed to clear session after restore failure", "err", err)
			}
			if g.OnSessionExpired != nil {
				g.OnSessionExpired(ctx)
			}
		}
	}

	if to.RequiresAuth && !g.Session.IsAuthenticated() {
		return RedirectTo(RouteLogin, url.Values{"redirect": {loc.FullPath}})
	}

	if to.RequiresAdmin && !g.Session.IsAdmin() {
		return RedirectTo(RouteHome, nil)
	}

	return Allow()
}

func (g *AuthGuard) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
