// Package server initializes and runs the membership server. It opens the
// database, applies migrations, builds the auth service and serves the HTTP
// API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gymfitness/membership/internal/logging"
	"github.com/gymfitness/membership/internal/server/auth"
	"github.com/gymfitness/membership/internal/server/config"
	"github.com/gymfitness/membership/internal/server/repositories/repomanager"
	"github.com/gymfitness/membership/internal/server/rest"
	"github.com/gymfitness/membership/internal/server/services"
)

const migrationTimeout = 30 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *rest.HTTPServer
}

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)
	gin.SetMode(c.GinMode)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()

	mctx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()
	if err := rm.RunMigrations(mctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	svc := services.NewAuthService(
		db,
		rm,
		auth.NewBcryptHasher(c.BcryptCost),
		auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration),
		logger,
	)

	var limiter rest.RateLimiter
	if c.RedisAddr != "" {
		limiter, err = rest.NewRedisRateLimiter(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, logger)
		if err != nil {
			logger.Warn(ctx, "redis unavailable, using in-memory rate limiter", "addr", c.RedisAddr, "error", err)
			limiter = nil
		}
	}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   rest.NewHTTPServer(c, logger, svc, limiter),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a signal arrives, then releases
// the database and limiter.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	defer func() {
		app.http.Close()
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
