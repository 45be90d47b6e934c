package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	basePriceCents    = 99
	perPagePriceCents = 10
	centsExponent     = -2
)

// ErrNegativePrice indicates a pricing configuration with a negative amount.
var ErrNegativePrice = errors.New("prices cannot be negative")

// Config holds the prices charged for processing a document.
// The zero value is not useful; use DefaultConfig.
type Config struct {
	basePrice    decimal.Decimal
	perPagePrice decimal.Decimal
}

// DefaultConfig returns the process-wide pricing: a $0.99 base fee plus $0.10 per page.
func DefaultConfig() Config {
	return Config{
		basePrice:    decimal.New(basePriceCents, centsExponent),
		perPagePrice: decimal.New(perPagePriceCents, centsExponent),
	}
}

// NewConfig creates a pricing configuration from explicit amounts.
func NewConfig(basePrice, perPagePrice decimal.Decimal) (Config, error) {
	if basePrice.IsNegative() || perPagePrice.IsNegative() {
		return Config{}, ErrNegativePrice
	}

	return Config{
		basePrice:    basePrice,
		perPagePrice: perPagePrice,
	}, nil
}

// BasePrice returns the flat fee charged once per document.
func (c Config) BasePrice() decimal.Decimal {
	return c.basePrice
}

// PerPagePrice returns the fee charged for every page.
func (c Config) PerPagePrice() decimal.Decimal {
	return c.perPagePrice
}
