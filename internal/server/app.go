// Package server wires configuration, storage, services and both listeners
// of the storehub backend, and runs them until a termination signal.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/config"
	"github.com/dmitrijs2005/storehub/internal/server/httpapi"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storehub/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/storehub/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	handler     *httpapi.Handler
}

// NewApp validates c, opens storage, applies migrations and builds the
// services. Callers must Run the app, which releases the storage on exit.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(c.LogBackend)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	m, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	images, err := newImageStore(ctx, c)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	a, err := services.NewAuthSession(m, c, images, logger)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	h := httpapi.NewHandler(a,
		services.NewUserService(m, images, logger),
		services.NewStoreService(m, logger),
		services.NewSubResourceMutator(m, c, logger),
		c.SecureCookies(),
		logger,
	)

	return &App{config: c, logger: logger, repomanager: m, handler: h}, nil
}

// newImageStore keeps images in S3 whenever the data itself is durable;
// with in-memory repositories the images are kept in memory too.
func newImageStore(ctx context.Context, c *config.Config) (media.ImageStore, error) {
	if c.DatabaseDSN == "" {
		return media.NewMemoryImageStore(), nil
	}
	return media.NewS3ImageStore(ctx, c)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and gRPC until ctx is cancelled, a signal arrives or
// either listener fails. The first listener error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)
	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Error(ctx, "error closing storage", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return httpapi.NewServer(app.config.EndpointAddrHTTP, httpapi.NewRouter(app.handler), app.logger).Run(gctx)
	})
	g.Go(func() error {
		return gs.NewServer(app.config.EndpointAddrGRPC, app.logger).Run(gctx)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
