package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/recipebox/internal/auth/http"
	"github.com/aussiebroadwan/recipebox/internal/auth/service"
	"github.com/aussiebroadwan/recipebox/internal/auth/store"
	"github.com/aussiebroadwan/recipebox/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/recipebox/pkg/cryptox"
	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/aussiebroadwan/recipebox/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	codec  *jwtx.Codec
	hasher *cryptox.Pool

	// Services
	userService *service.UserService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "recipebox",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cfg.LogOutput,
		}),
	}

	if err := app.initCrypto(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("recipebox starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down recipebox...")

	// Give outstanding requests a deadline for completion
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

	app.logger.Info("recipebox stopped")
	return nil
}

// initCrypto loads the signing secret and builds the codec and hasher pool.
func (app *Application) initCrypto() error {
	secret, err := app.cfg.Secret()
	if err != nil {
		return fmt.Errorf("failed to load signing secret: %w", err)
	}

	var opts []jwtx.CodecOption
	if app.cfg.JWTIssuer != "" {
		opts = append(opts, jwtx.WithIssuer(app.cfg.JWTIssuer))
	}
	app.codec, err = jwtx.NewCodec(secret, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}

	hasher, err := cryptox.NewHasher(app.cfg.PasswordAlgorithm, app.cfg.PasswordBcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	app.hasher = cryptox.NewPool(hasher, app.cfg.PasswordHashConcurrency)

	app.logger.Info("crypto initialized",
		"password_algorithm", app.cfg.PasswordAlgorithm,
		"token_ttl", app.cfg.TokenTTL.String(),
	)
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", dsn)
	}
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")

	empty, err := db.Users().IsEmpty(context.Background())
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to inspect users table: %w", err)
	}
	if empty {
		app.logger.Info("no accounts yet; register the first one at POST /api/users/register")
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:    app.db,
		Hasher:   app.hasher,
		Codec:    app.codec,
		Avatars:  service.DefaultGravatar(),
		TokenTTL: app.cfg.TokenTTL,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		BuildVersion,
		app.db,
		app.logger,
		httpapi.Limits{Strict: app.cfg.StrictLimit, Lenient: app.cfg.LenientLimit},
	)

	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
