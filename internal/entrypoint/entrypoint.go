package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/postgres"
	"github.com/mrlokans/bookshelf/internal/filestore"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/store"
)

// OpenStore opens the configured backend and runs its schema setup. This is
// the only place schema setup happens; request handlers assume it is done.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.BookStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("using postgres store", zap.Int32("max_conns", cfg.Postgres.MaxConns))
		return postgres.NewRepository(pool), nil

	case config.StoreBackendFile:
		logger.Info("using JSON document store",
			zap.String("path", cfg.BooksFile.Path),
			zap.Bool("envelope", cfg.BooksFile.Envelope),
		)
		return filestore.New(cfg.BooksFile.Path, filestore.Options{
			Envelope: cfg.BooksFile.Envelope,
			Logger:   logger.Named("filestore"),
		}), nil

	default:
		db, err := database.NewDatabase(cfg.Database.Path, database.Options{
			LogQueries: cfg.Database.LogQueries,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize database: %w", err)
		}
		return books.NewRepository(db), nil
	}
}

// Serve listens on the configured address and blocks until ctx is cancelled
// or the server fails.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return serveListener(ctx, ln, handler, cfg.ShutdownTimeout(), logger)
}

func serveListener(ctx context.Context, ln net.Listener, handler http.Handler, timeout time.Duration, logger *zap.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// Run opens the store, builds the router and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, version string) error {
	logger.Info("starting bookshelf",
		zap.String("version", version),
		zap.String("backend", string(cfg.Store.Backend)),
	)

	bookStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := bookStore.Close(); err != nil {
			logger.Warn("error closing store", zap.Error(err))
		}
	}()

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:    bookStore,
		Logger:   logger.Named("http"),
		Version:  version,
		ReadOnly: cfg.HTTP.ReadOnly,
	})

	return Serve(ctx, router, cfg, logger)
}
