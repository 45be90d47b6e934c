package document_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/docquote/internal/document"
	"github.com/davidbz/docquote/internal/document/documenttest"
)

func TestPDFCounter_CountPages(t *testing.T) {
	counter := document.NewPDFCounter()
	ctx := context.Background()

	t.Run("counts pages of a valid pdf", func(t *testing.T) {
		for _, pages := range []int{1, 3, 12} {
			count, err := counter.CountPages(ctx, documenttest.PDF(pages))
			require.NoError(t, err)
			require.Equal(t, pages, count)
		}
	})

	t.Run("rejects empty data", func(t *testing.T) {
		_, err := counter.CountPages(ctx, nil)
		require.Error(t, err)
	})

	t.Run("rejects data that is not a pdf", func(t *testing.T) {
		_, err := counter.CountPages(ctx, []byte("%PDF-1.4\nthis is not really a pdf"))
		require.Error(t, err)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := counter.CountPages(cancelled, documenttest.PDF(1))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestImageCounter_CountPages(t *testing.T) {
	counter := document.NewImageCounter()
	ctx := context.Background()

	t.Run("an image is one page", func(t *testing.T) {
		count, err := counter.CountPages(ctx, documenttest.PNG())
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("rejects undecodable data", func(t *testing.T) {
		_, err := counter.CountPages(ctx, []byte("\x89PNG\r\n\x1a\ngarbage"))
		require.Error(t, err)
	})

	t.Run("rejects empty data", func(t *testing.T) {
		_, err := counter.CountPages(ctx, []byte{})
		require.Error(t, err)
	})
}
