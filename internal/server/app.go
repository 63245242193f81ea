// Package server wires configuration, storage, services and the gRPC
// endpoint together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/rpgkeeper/internal/logging"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/auth"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/config"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/rpgkeeper/internal/server/grpc"
)

// test seams
var (
	openDB                         = repomanager.OpenDB
	newRepositoryManager           = repomanager.NewPostgresRepositoryManager
	logOutput            io.Writer = os.Stdout
)

type App struct {
	config *config.Config
	logger logging.Logger
}

// NewApp validates c; a missing token secret stops the server here.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) buildServer(ctx context.Context, db *sql.DB) (*gs.GRPCServer, error) {
	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	issuer, err := auth.NewTokenIssuer(app.config.TokenSecret, app.config.TokenValidityDuration)
	if err != nil {
		return nil, err
	}

	credentials := services.NewCredentialManager(db, rm, issuer, app.logger)
	characters := services.NewCharacterService(db, rm, services.NewS3PortraitStore(app.config), app.logger)

	return gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, credentials, characters, issuer.Secret()), nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, err := openDB(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	s, err := app.buildServer(ctx, db)
	if err != nil {
		return err
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
