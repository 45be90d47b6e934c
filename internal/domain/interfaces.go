package domain

import (
	"context"
	"time"
)

// PageCounter determines how many pages a document has.
type PageCounter interface {
	// CountPages returns the number of pages in data.
	CountPages(ctx context.Context, data []byte) (int, error)

	// Name returns the counter identifier.
	Name() string

	// ContentTypes returns the MIME types this counter understands.
	ContentTypes() []string
}

// PageCounterRegistry manages page counters by content type.
type PageCounterRegistry interface {
	// Register adds a counter for all of its content types.
	Register(ctx context.Context, counter PageCounter) error

	// ForContentType retrieves the counter for a MIME type.
	ForContentType(ctx context.Context, contentType string) (PageCounter, error)

	// ContentTypes lists every accepted MIME type.
	ContentTypes(ctx context.Context) []string
}

// QuoteStore persists quotes until they expire.
type QuoteStore interface {
	// Save stores a quote that stays retrievable for ttl.
	Save(ctx context.Context, quote *Quote, ttl time.Duration) error

	// Get returns a quote, or ErrQuoteNotFound if it is missing or expired.
	Get(ctx context.Context, id string) (*Quote, error)

	// UpdateStatus moves a stored quote from status from to status to.
	// It returns ErrQuoteStatusChanged if the quote is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to QuoteStatus) error
}

// LanguageResolver validates explanation language codes.
type LanguageResolver interface {
	// Resolve maps an ISO 639-1 code to a supported language.
	Resolve(ctx context.Context, code string) (Language, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
