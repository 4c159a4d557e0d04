package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/storefront/internal/devapi/http"
	"github.com/aussiebroadwan/storefront/internal/devapi/service"
	"github.com/aussiebroadwan/storefront/internal/devapi/store"
	"github.com/aussiebroadwan/storefront/internal/devapi/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the development API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer jwtx.Signer
	secret []byte

	userService  *service.UserService
	rolesService *service.RolesService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "storefront-devapi",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler returns the root handler, for serving in tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("devapi starting", "port", app.cfg.Port, "prefix", app.cfg.Prefix, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down devapi...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("devapi stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSigner uses the configured secret, or mints one so tokens only live
// as long as the process.
func (app *Application) initSigner() error {
	secret := app.cfg.JWTSecret
	if secret == "" {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = generated
		app.logger.Warn("DEVAPI_JWT_SECRET not set, tokens will not survive a restart")
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return err
	}
	app.signer = signer
	app.secret = []byte(secret)
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:    app.db,
		Signer:   app.signer,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.TokenTTL,
	}
	app.rolesService = &service.RolesService{Store: app.db}
}

func (app *Application) seedAdmin(ctx context.Context) error {
	if app.cfg.AdminName == "" {
		return nil
	}
	if app.cfg.AdminPassword == "" {
		return errors.New("DEVAPI_ADMIN_PASSWORD is required when DEVAPI_ADMIN_NAME is set")
	}

	created, err := app.userService.EnsureAdmin(ctx, app.cfg.AdminName, app.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		app.logger.Info("admin account created", "name", app.cfg.AdminName)
	}
	return nil
}

func (app *Application) initHTTP() {
	verifier := jwtx.NewVerifierHS256(app.secret, app.cfg.Issuer, 30*time.Second)

	app.router = httpapi.NewRouter(app.cfg.Prefix, verifier, BuildVersion, app.logger)
	app.router.UserService = app.userService
	app.router.RolesService = app.rolesService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.cfg.Port)),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
