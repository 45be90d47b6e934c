package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/docquote/internal/observability"
	"github.com/davidbz/docquote/internal/pricing"
)

const (
	defaultQuoteTTL = 30 * time.Minute

	// EventQuoteCreated is published after a quote is stored.
	EventQuoteCreated = "quote.created"

	// EventCheckoutStarted is published when a quote is handed to payment.
	EventCheckoutStarted = "checkout.started"
)

// QuoteSettings tunes quote lifetime and upload limits.
type QuoteSettings struct {
	TTL              time.Duration
	MaxDocumentBytes int64
}

// QuoteService prices documents and prepares payment.
type QuoteService struct {
	calculator *pricing.Calculator
	counters   PageCounterRegistry
	store      QuoteStore
	languages  LanguageResolver
	events     EventPublisher
	settings   QuoteSettings
	now        func() time.Time
}

// NewQuoteService creates a new quote service (DI constructor).
func NewQuoteService(
	calculator *pricing.Calculator,
	counters PageCounterRegistry,
	store QuoteStore,
	languages LanguageResolver,
	events EventPublisher,
	settings QuoteSettings,
) *QuoteService {
	if settings.TTL <= 0 {
		settings.TTL = defaultQuoteTTL
	}

	return &QuoteService{
		calculator: calculator,
		counters:   counters,
		store:      store,
		languages:  languages,
		events:     events,
		settings:   settings,
		now:        time.Now,
	}
}

// Calculator returns the calculator quotes are priced with.
func (s *QuoteService) Calculator() *pricing.Calculator {
	return s.calculator
}

// AcceptedContentTypes lists the document types that can be quoted.
func (s *QuoteService) AcceptedContentTypes(ctx context.Context) []string {
	return s.counters.ContentTypes(ctx)
}

// QuotePages creates a quote for a known page count.
func (s *QuoteService) QuotePages(ctx context.Context, req *QuoteRequest) (*Quote, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	return s.createQuote(ctx, req.PageCount, req.Language, "", "")
}

// QuoteDocument validates an upload, counts its pages and creates a quote.
func (s *QuoteService) QuoteDocument(ctx context.Context, doc Document, lang string) (*Quote, error) {
	logger := observability.FromContext(ctx)

	contentType, err := ValidateDocument(doc, s.settings.MaxDocumentBytes, s.counters.ContentTypes(ctx))
	if err != nil {
		logger.Info("document rejected",
			observability.String("document", doc.Name),
			observability.Int("size", len(doc.Data)),
			observability.Error(err))
		return nil, err
	}

	counter, err := s.counters.ForContentType(ctx, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedDocument, err)
	}

	pageCount, err := counter.CountPages(ctx, doc.Data)
	if err != nil {
		logger.Warn("page counting failed",
			observability.String("counter", counter.Name()),
			observability.String("content_type", contentType),
			observability.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedDocument, err)
	}

	logger.Info("document pages counted",
		observability.String("counter", counter.Name()),
		observability.String("content_type", contentType),
		observability.Int("pages", pageCount))

	return s.createQuote(ctx, pageCount, lang, doc.Name, contentType)
}

func (s *QuoteService) createQuote(
	ctx context.Context,
	pageCount int,
	langCode string,
	documentName string,
	contentType string,
) (*Quote, error) {
	calc, err := s.calculator.Compute(pageCount)
	if err != nil {
		return nil, err
	}

	lang, err := s.languages.Resolve(ctx, langCode)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.calculator.DescribeBreakdown(pageCount)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	quote := &Quote{
		ID:           uuid.New().String(),
		Status:       QuoteStatusOpen,
		Language:     lang,
		DocumentName: documentName,
		ContentType:  contentType,
		Pricing:      calc,
		DisplayTotal: pricing.FormatForDisplay(calc.TotalPrice),
		Breakdown:    breakdown,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.settings.TTL),
	}

	ctx = observability.WithQuoteID(ctx, quote.ID)
	ctx = observability.WithLanguage(ctx, lang.Code)

	if err := s.store.Save(ctx, quote, s.settings.TTL); err != nil {
		return nil, fmt.Errorf("failed to store quote: %w", err)
	}

	s.publish(ctx, EventQuoteCreated, map[string]interface{}{
		"page_count":  calc.PageCount,
		"total_cents": calc.TotalCents,
	})

	return quote, nil
}

// GetQuote returns a stored quote that has not expired.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (*Quote, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrQuoteNotFound)
	}

	quote, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if quote.Expired(s.now()) {
		return nil, fmt.Errorf("%w: %s expired", ErrQuoteNotFound, id)
	}

	return quote, nil
}

// Checkout turns a quote into the exact amount the payment step must charge.
// The charge is recomputed from the page count; a quote whose stored amount
// differs is refused so the user is never charged something other than shown.
func (s *QuoteService) Checkout(ctx context.Context, id string) (*PaymentIntent, error) {
	ctx = observability.WithQuoteID(ctx, id)
	logger := observability.FromContext(ctx)

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	calc, err := s.calculator.Compute(quote.Pricing.PageCount)
	if err != nil {
		return nil, err
	}

	if calc.TotalCents != quote.Pricing.TotalCents {
		logger.Error("quoted amount differs from current price",
			observability.Int64("quoted_cents", quote.Pricing.TotalCents),
			observability.Int64("current_cents", calc.TotalCents))
		return nil, fmt.Errorf("%w: quoted %d, current %d cents",
			ErrPriceMismatch, quote.Pricing.TotalCents, calc.TotalCents)
	}

	if quote.Status == QuoteStatusOpen {
		err := s.store.UpdateStatus(ctx, quote.ID, QuoteStatusOpen, QuoteStatusCheckoutStarted)
		switch {
		case errors.Is(err, ErrQuoteStatusChanged):
			// A concurrent checkout started it first and published the event.
			logger.Debug("checkout already started", observability.Error(err))
		case err != nil:
			return nil, fmt.Errorf("failed to update quote status: %w", err)
		default:
			s.publish(ctx, EventCheckoutStarted, map[string]interface{}{
				"amount_cents": calc.TotalCents,
			})
		}
	}

	return &PaymentIntent{
		QuoteID:        quote.ID,
		AmountCents:    calc.TotalCents,
		Currency:       pricing.CurrencyCode(),
		DisplayAmount:  pricing.FormatForDisplay(calc.TotalPrice),
		Description:    quote.Breakdown,
		IdempotencyKey: "quote-" + quote.ID,
	}, nil
}

func (s *QuoteService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}
