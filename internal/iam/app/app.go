// Package app wires configuration, storage, services and the HTTP server
// into a runnable IAM process.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/alae/iam/internal/iam/http"
	"github.com/alae/iam/internal/iam/service"
	"github.com/alae/iam/internal/iam/store"
	"github.com/alae/iam/internal/iam/store/drivers/sqlite"
	"github.com/alae/iam/pkg/jwtx"
	"github.com/alae/iam/pkg/passx"
	"github.com/alae/iam/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the IAM service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	closeKeys func()

	registrar           *service.Registrar
	authenticator       *service.Authenticator
	sessionService      *service.SessionService
	tokenService        *service.TokenService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "iam-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("iam service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"carriers", app.cfg.Carriers,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully stops the server, workers and storage.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down iam service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if app.closeKeys != nil {
		app.closeKeys()
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("iam service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

func (app *Application) initServices() error {
	hasher := passx.New(app.cfg.BcryptCost)

	if app.cfg.CarrierEnabled(CarrierSession) {
		app.registrar = &service.Registrar{Store: app.db, Hasher: hasher}
		app.authenticator = &service.Authenticator{Store: app.db, Hasher: hasher}
		app.sessionService = service.NewSessionService(app.db.Sessions(), app.cfg.SessionTTL)
		app.housekeepingService = service.NewHousekeepingService(
			app.db.Sessions(),
			app.logger,
			app.cfg.HousekeepingInterval,
		)
	}

	if app.cfg.CarrierEnabled(CarrierToken) {
		if app.cfg.JWKSURL == "" {
			return fmt.Errorf("token carrier enabled but IAM_JWKS_URL is not set")
		}

		keyfunc, closeKeys, err := jwtx.RemoteKeys(context.Background(), jwtx.RemoteKeysConfig{
			URL: app.cfg.JWKSURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize token verification keys: %w", err)
		}
		app.closeKeys = closeKeys

		verifier := jwtx.NewRS256(keyfunc, jwtx.VerifyOptions{
			Issuer:   app.cfg.JWTIssuer,
			Audience: app.cfg.JWTAudience,
			Leeway:   app.cfg.JWTLeeway,
		})
		app.tokenService = &service.TokenService{Verifier: verifier}
	}

	return nil
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(app.db, BuildVersion, app.logger)
	app.router.SecureCookies = app.cfg.SecureCookies
	app.router.Registrar = app.registrar
	app.router.Authenticator = app.authenticator
	app.router.SessionService = app.sessionService
	app.router.TokenService = app.tokenService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
