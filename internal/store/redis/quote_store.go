package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/observability"
)

const maxWatchRetries = 3

var _ domain.QuoteStore = (*QuoteStore)(nil)

// QuoteStore implements domain.QuoteStore on Redis with native key expiry.
type QuoteStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewClient creates a Redis client from configuration.
func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewQuoteStore creates a new Redis quote store and checks the connection.
func NewQuoteStore(ctx context.Context, client *redis.Client, keyPrefix string) (*QuoteStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &QuoteStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}, nil
}

func (s *QuoteStore) key(id string) string {
	return s.keyPrefix + id
}

// Save stores the quote as JSON with the given ttl.
func (s *QuoteStore) Save(ctx context.Context, quote *domain.Quote, ttl time.Duration) error {
	if quote == nil {
		return errors.New("quote cannot be nil")
	}

	if quote.ID == "" {
		return errors.New("quote ID cannot be empty")
	}

	if ttl <= 0 {
		return fmt.Errorf("invalid ttl: %s", ttl)
	}

	stored := *quote
	stored.ExpiresAt = s.now().Add(ttl).UTC()

	data, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	if err := s.client.Set(ctx, s.key(quote.ID), data, ttl).Err(); err != nil {
		observability.FromContext(ctx).Error("failed to store quote in redis",
			observability.String("key", s.key(quote.ID)),
			observability.Error(err))
		return fmt.Errorf("failed to store quote: %w", err)
	}

	return nil
}

// Get retrieves a quote by ID.
func (s *QuoteStore) Get(ctx context.Context, id string) (*domain.Quote, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuoteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	return decodeQuote(data)
}

// UpdateStatus moves a stored quote from one status to another, keeping its
// remaining ttl. Writes that race with another client are retried.
func (s *QuoteStore) UpdateStatus(ctx context.Context, id string, from, to domain.QuoteStatus) error {
	key := s.key(id)

	update := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", domain.ErrQuoteNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to load quote: %w", err)
		}

		quote, err := decodeQuote(data)
		if err != nil {
			return err
		}
		if quote.Status != from {
			return fmt.Errorf("%w: %s is %s, not %s", domain.ErrQuoteStatusChanged, id, quote.Status, from)
		}
		quote.Status = to

		updated, err := json.Marshal(quote)
		if err != nil {
			return fmt.Errorf("failed to marshal quote: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := s.client.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}

	return fmt.Errorf("%w: %s kept changing", domain.ErrQuoteStatusChanged, id)
}

func decodeQuote(data []byte) (*domain.Quote, error) {
	var quote domain.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return &quote, nil
}
