// Package store selects the quote store backend from configuration.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/observability"
	quoteredis "github.com/davidbz/docquote/internal/store/redis"
	"github.com/davidbz/docquote/internal/store/sqlite"
)

// Supported values of STORE_DRIVER.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

const purgeInterval = time.Minute

// ErrUnknownDriver indicates an unsupported STORE_DRIVER value.
var ErrUnknownDriver = errors.New("unknown store driver")

// Backend is an opened quote store and its shutdown hook.
type Backend struct {
	Store domain.QuoteStore
	close func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open creates the quote store named by cfg.Driver. A SQLite backend also
// starts purging expired quotes until ctx is cancelled.
func Open(
	ctx context.Context,
	cfg *config.StoreConfig,
	redisCfg *config.RedisConfig,
	sqliteCfg *config.SQLiteConfig,
) (*Backend, error) {
	logger := observability.FromContext(ctx)

	switch cfg.Driver {
	case DriverMemory, "":
		logger.Info("using in-memory quote store")
		return &Backend{Store: domain.NewInMemoryQuoteStore()}, nil

	case DriverRedis:
		client := quoteredis.NewClient(redisCfg)
		quotes, err := quoteredis.NewQuoteStore(ctx, client, redisCfg.KeyPrefix)
		if err != nil {
			_ = client.Close() // Close error less important than connection error
			return nil, err
		}
		logger.Info("using redis quote store", observability.String("addr", redisCfg.Addr))
		return &Backend{Store: quotes, close: client.Close}, nil

	case DriverSQLite:
		quotes, err := sqlite.Open(ctx, sqliteCfg.Path)
		if err != nil {
			return nil, err
		}
		go quotes.RunPurger(ctx, purgeInterval)
		logger.Info("using sqlite quote store", observability.String("path", sqliteCfg.Path))
		return &Backend{Store: quotes, close: quotes.Close}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
