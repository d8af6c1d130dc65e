// Package server owns the HTTP listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/internal/kernel"
	"github.com/shashiranjanraj/bookstore/pkg/cache"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// Start connects the stores, serves until ctx is cancelled, then drains
// in-flight requests.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	if database.DB == nil {
		if err := database.Connect(); err != nil {
			return err
		}
	}
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("cache disabled", "error", err)
	}

	k, err := kernel.NewHTTPKernel(database.DB)
	if err != nil {
		return err
	}
	k.Boot()
	defer k.Close()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
