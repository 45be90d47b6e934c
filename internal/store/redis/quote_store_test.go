package redis_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/pricing"
	redisstore "github.com/davidbz/docquote/internal/store/redis"
)

const testPrefix = "docquote-test:"

// newTestStore connects to the Redis named by DOCQUOTE_TEST_REDIS_ADDR, or to an
// in-process server when it is unset.
func newTestStore(t *testing.T) *redisstore.QuoteStore {
	t.Helper()

	addr := os.Getenv("DOCQUOTE_TEST_REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}

	return connect(t, addr, testPrefix+uuid.NewString()+":")
}

func connect(t *testing.T, addr, prefix string) *redisstore.QuoteStore {
	t.Helper()

	client := redisstore.NewClient(&config.RedisConfig{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store, err := redisstore.NewQuoteStore(context.Background(), client, prefix)
	require.NoError(t, err)

	return store
}

func openQuote(t *testing.T, id string, pages int) *domain.Quote {
	t.Helper()

	calc, err := pricing.NewCalculator(pricing.DefaultConfig()).Compute(pages)
	require.NoError(t, err)

	return &domain.Quote{
		ID:      id,
		Status:  domain.QuoteStatusOpen,
		Pricing: calc,
	}
}

func TestQuoteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := openQuote(t, "q1", 3)
	require.NoError(t, store.Save(ctx, saved, time.Minute))

	quote, err := store.Get(ctx, "q1")
	require.NoError(t, err)
	require.Equal(t, int64(129), quote.Pricing.TotalCents)
	require.True(t, quote.Pricing.TotalPrice.Equal(saved.Pricing.TotalPrice))
	require.Equal(t, domain.QuoteStatusOpen, quote.Status)
	require.False(t, quote.ExpiresAt.IsZero())

	require.NoError(t, store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted))

	quote, err = store.Get(ctx, "q1")
	require.NoError(t, err)
	require.Equal(t, domain.QuoteStatusCheckoutStarted, quote.Status)
	require.Equal(t, int64(129), quote.Pricing.TotalCents)
}

func TestQuoteStore_Missing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrQuoteNotFound)

	err = store.UpdateStatus(ctx, "missing", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
	require.ErrorIs(t, err, domain.ErrQuoteNotFound)
}

func TestQuoteStore_UpdateStatus_RequiresExpectedStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, openQuote(t, "q1", 1), time.Minute))
	require.NoError(t, store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted))

	err := store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
	require.ErrorIs(t, err, domain.ErrQuoteStatusChanged)
}

func TestQuoteStore_UpdateStatus_ConcurrentCheckout(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, openQuote(t, "shared", 2), time.Minute))

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = store.UpdateStatus(ctx, "shared", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrQuoteStatusChanged)
	}
	require.Equal(t, 1, succeeded)
}

func TestQuoteStore_Expiry(t *testing.T) {
	server := miniredis.RunT(t)
	store := connect(t, server.Addr(), testPrefix)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, openQuote(t, "q1", 4), 30*time.Minute))
	require.Equal(t, 30*time.Minute, server.TTL(testPrefix+"q1"))

	server.FastForward(10 * time.Minute)

	// The status update keeps the remaining ttl rather than resetting it.
	require.NoError(t, store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted))
	require.Equal(t, 20*time.Minute, server.TTL(testPrefix+"q1"))

	server.FastForward(21 * time.Minute)

	_, err := store.Get(ctx, "q1")
	require.ErrorIs(t, err, domain.ErrQuoteNotFound)

	err = store.UpdateStatus(ctx, "q1", domain.QuoteStatusCheckoutStarted, domain.QuoteStatusOpen)
	require.ErrorIs(t, err, domain.ErrQuoteNotFound)
}

func TestQuoteStore_CorruptPayload(t *testing.T) {
	server := miniredis.RunT(t)
	store := connect(t, server.Addr(), testPrefix)

	require.NoError(t, server.Set(testPrefix+"bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrQuoteNotFound)
}

func TestNewQuoteStore_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	client := redisstore.NewClient(&config.RedisConfig{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	_, err := redisstore.NewQuoteStore(context.Background(), client, testPrefix)
	require.Error(t, err)
}
