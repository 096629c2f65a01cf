package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"country-service/internal/config"
	"country-service/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "country: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Info("no .env file found, relying on system env vars")
	}

	srv, err := server.NewServer(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise country service", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("country service shutting down gracefully")
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("country service shutdown error", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("country service failed", zap.Error(err))
		}
	}
	logger.Info("country service stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
