// Package server initializes and runs the staffdesk application server:
// config, logging, database with migrations, the refresh-token registry,
// services, and the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/staffdesk-io/staffdesk/internal/logging"
	"github.com/staffdesk-io/staffdesk/internal/server/config"
	"github.com/staffdesk-io/staffdesk/internal/server/httpapi"
	"github.com/staffdesk-io/staffdesk/internal/server/repositories/repomanager"
	"github.com/staffdesk-io/staffdesk/internal/server/services"
	"github.com/staffdesk-io/staffdesk/internal/server/sessions"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var registry sessions.Registry
	switch cfg.RegistryBackend {
	case config.RegistryBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		registry = sessions.NewRedisRegistry(client, cfg.RefreshTokenValidityDuration)
	default:
		registry = sessions.NewMemoryRegistry()
	}

	authService := services.NewAuthService(db, rm, registry, cfg)
	pictures := services.NewPictureService(cfg)
	employeeService := services.NewEmployeeService(db, rm, pictures)

	httpServer := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, authService, employeeService, []byte(cfg.AccessSecretKey))

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
