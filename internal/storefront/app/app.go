package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/storefront/internal/storefront/notify"
	"github.com/aussiebroadwan/storefront/internal/storefront/router"
	"github.com/aussiebroadwan/storefront/internal/storefront/session"
	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore"
	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore/drivers/memory"
	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore/drivers/redis"
	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/apiclient"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is one "page load" of the storefront: a fresh in-memory
// session over the persisted token, wired to the API client and router.
type Application struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer

	tokens   tokenstore.Store
	api      *apiclient.Client
	session  *session.Session
	router   *router.Router
	notifier *notify.Notifier
}

// New wires every dependency. Command output goes to out; logs go to
// stderr so they never mix with it.
func New(ctx context.Context, cfg Config, out io.Writer) (*Application, error) {
	if out == nil {
		out = os.Stdout
	}

	app := &Application{
		cfg: cfg,
		out: out,
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  os.Stderr,
		}),
	}

	tokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.tokens = tokens

	app.api = apiclient.New(apiclient.Config{
		BaseURL:           cfg.APIURL,
		Timeout:           cfg.APITimeout,
		RequestsPerSecond: cfg.APIRPS,
		Tokens:            app.tokens,
		Logger:            app.logger,
	})

	app.session = session.New(app.api, app.tokens, app.logger)

	app.notifier = notify.New()

	guard := &router.AuthGuard{
		Session: app.session,
		Tokens:  app.tokens,
		Logger:  app.logger,
		OnSessionExpired: func(context.Context) {
			app.notifier.Show(notify.Options{Message: "Session expired, please log in again", Color: notify.ColorWarning})
		},
	}
	app.router = router.New(router.DefaultRoutes(), guard.BeforeEach)

	return app, nil
}

func openTokenStore(ctx context.Context, cfg Config) (tokenstore.Store, error) {
	switch cfg.TokenStore {
	case "sqlite", "":
		store, err := sqlite.Open(cfg.StateFile, cfg.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("failed to open token store: %w", err)
		}
		return store, nil
	case "redis":
		store, err := redis.Open(ctx, cfg.RedisAddr, cfg.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis token store: %w", err)
		}
		return store, nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}

// Session exposes the session for callers embedding the app.
func (app *Application) Session() *session.Session { return app.session }

// Router exposes the router for callers embedding the app.
func (app *Application) Router() *router.Router { return app.router }

// Close releases the token store and any pending notification timer.
func (app *Application) Close() error {
	app.notifier.Stop()
	if err := app.tokens.Close(); err != nil {
		app.logger.Error("error closing token store", "error", err)
		return err
	}
	return nil
}
