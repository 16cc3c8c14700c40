// Package main provides the entry point for the scoreboard HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/app"
	"github.com/festy23/softball_scoreboard/internal/config"
	"github.com/festy23/softball_scoreboard/internal/database/database"
	"github.com/festy23/softball_scoreboard/internal/database/migrate"
	"github.com/festy23/softball_scoreboard/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := migrate.Migrate(db, log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	a, err := app.New(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      a.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Infow("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Errorw("server failed", "error", err)
		}
	}

	return shutdown(srv, a, cfg.Server, log)
}

func shutdown(srv *http.Server, a *app.App, cfg config.ServerConfig, log *zap.SugaredLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	// Viewers hold hijacked connections that Shutdown does not wait for.
	a.Hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("closing app: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		log.Errorw("shutdown finished with errors", "error", err)
		return err
	}
	log.Infow("shutdown complete")
	return nil
}
