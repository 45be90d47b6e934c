package domain

import (
	"time"

	"github.com/davidbz/docquote/internal/pricing"
)

// QuoteStatus tracks where a quote is in the purchase flow.
type QuoteStatus string

const (
	// QuoteStatusOpen is a priced quote nobody has started paying for.
	QuoteStatusOpen QuoteStatus = "open"

	// QuoteStatusCheckoutStarted is a quote handed to the payment step.
	QuoteStatusCheckoutStarted QuoteStatus = "checkout_started"
)

// QuoteRequest asks for a price by page count.
type QuoteRequest struct {
	PageCount int    `json:"page_count"`
	Language  string `json:"language,omitempty"` // ISO 639-1, defaults to "en"
}

// Document is an uploaded file awaiting a quote.
type Document struct {
	Name string
	Data []byte
}

// Language is a resolved explanation language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Quote is a stored price offer for one document.
type Quote struct {
	ID           string              `json:"id"`
	Status       QuoteStatus         `json:"status"`
	Language     Language            `json:"language"`
	DocumentName string              `json:"document_name,omitempty"`
	ContentType  string              `json:"content_type,omitempty"`
	Pricing      pricing.Calculation `json:"pricing"`
	DisplayTotal string              `json:"display_total"`
	Breakdown    string              `json:"breakdown"`
	CreatedAt    time.Time           `json:"created_at"`
	ExpiresAt    time.Time           `json:"expires_at"`
}

// Expired reports whether the quote can no longer be used at now.
func (q *Quote) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

// PaymentIntent is what the payment step is instructed to charge.
type PaymentIntent struct {
	QuoteID        string `json:"quote_id"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	DisplayAmount  string `json:"display_amount"`
	Description    string `json:"description"`
	IdempotencyKey string `json:"idempotency_key"`
}
