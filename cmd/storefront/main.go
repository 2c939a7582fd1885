// Package main запускает HTTP-сервер витрины цветочного магазина.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/floran-storefront/internal/backend"
	"github.com/mmeshcher/floran-storefront/internal/config"
	"github.com/mmeshcher/floran-storefront/internal/handler"
	"github.com/mmeshcher/floran-storefront/internal/localstore"
	"github.com/mmeshcher/floran-storefront/internal/middleware"
	"github.com/mmeshcher/floran-storefront/internal/repository"
	"github.com/mmeshcher/floran-storefront/internal/service"
)

const janitorInterval = time.Minute

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	storage, closer, err := openStorage(cfg)
	if err != nil {
		sugar.Fatalw("storage initialization error", "error", err.Error())
	}
	defer closer.Close()

	svc := service.NewService(backend.NewClient(cfg.BackendAPIAddress), storage, logger, cfg.SessionIdleTTL)
	defer svc.Close()

	if cfg.SessionSecret == "" {
		sugar.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	}
	sessions := middleware.NewSessionMiddleware(cfg.SessionSecret)
	h := handler.NewHandler(svc, logger, sessions)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Выгрузка простаивающих сессий и очистка старых данных хранилища
	svc.StartJanitor(ctx, janitorInterval)

	g.Go(func() error {
		sugar.Infow("starting storefront server",
			"addr", cfg.RunAddress,
			"backend", cfg.BackendAPIAddress,
			"idle_ttl", cfg.SessionIdleTTL.String(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// openStorage выбирает хранилище данных сессий: Redis, PostgreSQL или память процесса.
func openStorage(cfg *config.Config) (localstore.Storage, io.Closer, error) {
	switch {
	case cfg.RedisAddress != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}

		store := localstore.NewRedis(client, localstore.Retention)
		return store, store, nil
	case cfg.DatabaseURI != "":
		repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	default:
		return localstore.NewMemory(), io.NopCloser(nil), nil
	}
}
