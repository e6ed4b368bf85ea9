package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/CarbonTracker/internal/config"
	"github.com/GoArmGo/CarbonTracker/internal/handler"
)

// runServer запускает HTTP сервер и блокируется до отмены ctx.
func runServer(ctx context.Context, cfg *config.Config, c Components, logger *slog.Logger) error {
	router := handler.NewRouter(handler.Dependencies{
		Auth:           c.Auth,
		Profiles:       c.Profiles,
		Ledger:         c.Ledger,
		Calculator:     c.Calculator,
		News:           c.News,
		Reports:        c.Reports,
		Publisher:      c.Publisher,
		Pinger:         c.Pinger,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
	})

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
