package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/document"
	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/httpserver"
	"github.com/davidbz/docquote/internal/httpserver/middleware"
	"github.com/davidbz/docquote/internal/language"
	"github.com/davidbz/docquote/internal/observability"
	"github.com/davidbz/docquote/internal/pricing"
	"github.com/davidbz/docquote/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := buildContainer(ctx)

	err := container.Invoke(func(
		server *httpserver.Server,
		backend *store.Backend,
		serverCfg *config.ServerConfig,
		logger *zap.Logger,
	) error {
		defer func() {
			if err := backend.Close(); err != nil {
				logger.Warn("failed to close quote store", zap.Error(err))
			}
			_ = logger.Sync()
		}()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(serverCfg.ShutdownTimeout)*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildContainer(ctx context.Context) *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Pricing
	if err := container.Provide(func() *pricing.Calculator {
		return pricing.NewCalculator(pricing.DefaultConfig())
	}); err != nil {
		log.Fatalf("Failed to provide calculator: %v", err)
	}

	// Page counters
	if err := container.Provide(func() (domain.PageCounterRegistry, error) {
		return document.NewDefaultRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide page counters: %v", err)
	}

	// Languages
	if err := container.Provide(func() domain.LanguageResolver {
		return language.NewResolver()
	}); err != nil {
		log.Fatalf("Failed to provide language resolver: %v", err)
	}

	// Quote store. Taking the logger makes dig run InitLogger before the store
	// opens, so its startup lines go through the configured logger.
	if err := container.Provide(func(
		_ *zap.Logger,
		storeCfg *config.StoreConfig,
		redisCfg *config.RedisConfig,
		sqliteCfg *config.SQLiteConfig,
	) (*store.Backend, error) {
		return store.Open(ctx, storeCfg, redisCfg, sqliteCfg)
	}); err != nil {
		log.Fatalf("Failed to provide quote store backend: %v", err)
	}
	if err := container.Provide(func(backend *store.Backend) domain.QuoteStore {
		return backend.Store
	}); err != nil {
		log.Fatalf("Failed to provide quote store: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(storeCfg *config.StoreConfig, upload *config.UploadConfig) domain.QuoteSettings {
		return domain.QuoteSettings{
			TTL:              time.Duration(storeCfg.QuoteTTL) * time.Second,
			MaxDocumentBytes: upload.MaxBytes,
		}
	}); err != nil {
		log.Fatalf("Failed to provide quote settings: %v", err)
	}
	if err := container.Provide(domain.NewQuoteService); err != nil {
		log.Fatalf("Failed to provide quote service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
