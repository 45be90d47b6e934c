package domain_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/docquote/internal/domain"
)

func TestInMemoryQuoteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and retrieve quote", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()

		err := store.Save(ctx, &domain.Quote{ID: "q1", Status: domain.QuoteStatusOpen}, time.Hour)
		require.NoError(t, err)

		quote, err := store.Get(ctx, "q1")
		require.NoError(t, err)
		require.Equal(t, "q1", quote.ID)
		require.Equal(t, domain.QuoteStatusOpen, quote.Status)
		require.False(t, quote.ExpiresAt.IsZero())
	})

	t.Run("returned quotes are copies", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()
		original := &domain.Quote{ID: "q1", Status: domain.QuoteStatusOpen}
		require.NoError(t, store.Save(ctx, original, time.Hour))

		original.Status = domain.QuoteStatusCheckoutStarted
		quote, err := store.Get(ctx, "q1")
		require.NoError(t, err)
		require.Equal(t, domain.QuoteStatusOpen, quote.Status)

		quote.Status = domain.QuoteStatusCheckoutStarted
		again, err := store.Get(ctx, "q1")
		require.NoError(t, err)
		require.Equal(t, domain.QuoteStatusOpen, again.Status)
	})

	t.Run("get unknown quote returns not found", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()

		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})

	t.Run("expired quote returns not found", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()
		require.NoError(t, store.Save(ctx, &domain.Quote{ID: "q1"}, time.Millisecond))

		time.Sleep(5 * time.Millisecond)

		_, err := store.Get(ctx, "q1")
		require.ErrorIs(t, err, domain.ErrQuoteNotFound)

		err = store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
		require.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})

	t.Run("update status", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()
		require.NoError(t, store.Save(ctx, &domain.Quote{ID: "q1", Status: domain.QuoteStatusOpen}, time.Hour))

		require.NoError(t, store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted))

		quote, err := store.Get(ctx, "q1")
		require.NoError(t, err)
		require.Equal(t, domain.QuoteStatusCheckoutStarted, quote.Status)

		err = store.UpdateStatus(ctx, "q1", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
		require.ErrorIs(t, err, domain.ErrQuoteStatusChanged)
	})

	t.Run("update unknown quote returns not found", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()

		err := store.UpdateStatus(ctx, "missing", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
		require.ErrorIs(t, err, domain.ErrQuoteNotFound)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()

		require.Error(t, store.Save(ctx, nil, time.Hour))
		require.Error(t, store.Save(ctx, &domain.Quote{}, time.Hour))
		require.Error(t, store.Save(ctx, &domain.Quote{ID: "q1"}, 0))
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := domain.NewInMemoryQuoteStore()
		require.NoError(t, store.Save(ctx, &domain.Quote{ID: "shared", Status: domain.QuoteStatusOpen}, time.Hour))

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = store.Get(ctx, "shared")
			}()
			go func() {
				defer wg.Done()
				err := store.UpdateStatus(ctx, "shared", domain.QuoteStatusOpen, domain.QuoteStatusCheckoutStarted)
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 1, succeeded)

		quote, err := store.Get(ctx, "shared")
		require.NoError(t, err)
		require.Equal(t, domain.QuoteStatusCheckoutStarted, quote.Status)
	})
}
