// Package server wires configuration, storage, services and the gRPC
// transport into a runnable credential server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/credbridge/internal/logging"
	"github.com/dmitrijs2005/credbridge/internal/server/config"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credbridge/internal/server/services"

	gs "github.com/dmitrijs2005/credbridge/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	publicKeys *services.PublicKeyService
	tokens     *services.AccessTokenService
	statistics *services.StatisticsService
	directory  *services.DirectoryService
}

// NewApp connects to the database, applies migrations and builds the
// services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		publicKeys: services.NewPublicKeyService(db, rm, logger),
		tokens:     services.NewAccessTokenService(db, rm, services.NewS3Presigner(c), c, logger),
		statistics: services.NewStatisticsService(db, rm),
		directory:  services.NewDirectoryService(db, rm),
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.publicKeys, app.tokens, app.statistics, app.directory, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.TokenSweepInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runSweeper(ctx, app.config.TokenSweepInterval, app.tokens, app.logger)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	app.logger.Info(ctx, "Stopped")
}
