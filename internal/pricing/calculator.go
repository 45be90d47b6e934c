// Package pricing computes what a document explanation costs.
//
// All amounts are decimal USD values. The only conversion to an integer
// happens when a total is turned into cents, which rounds half away from zero.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPageCount indicates a page count below one or above MaxPageCount.
	ErrInvalidPageCount = errors.New("page count must be between 1 and 100000")

	// ErrAmountOutOfRange indicates an amount whose cents do not fit in an int64.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

const (
	// MaxPageCount is the largest document that can be priced.
	MaxPageCount = 100_000

	centsPerUnit = 100
)

//nolint:gochecknoglobals // immutable bounds
var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Calculation is the priced result for a single document.
type Calculation struct {
	BasePrice    decimal.Decimal `json:"base_price"`
	PerPagePrice decimal.Decimal `json:"per_page_price"`
	PageCount    int             `json:"page_count"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	TotalCents   int64           `json:"total_cents"`
}

// Calculator prices documents with a fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	config Config
}

// NewCalculator creates a calculator (DI constructor).
func NewCalculator(config Config) *Calculator {
	return &Calculator{
		config: config,
	}
}

// Config returns the configuration the calculator prices with.
func (c *Calculator) Config() Config {
	return c.config
}

// Compute prices a document with the given number of pages.
func (c *Calculator) Compute(pageCount int) (Calculation, error) {
	if pageCount < 1 || pageCount > MaxPageCount {
		return Calculation{}, fmt.Errorf("%w: got %d", ErrInvalidPageCount, pageCount)
	}

	pages := decimal.NewFromInt(int64(pageCount))
	total := c.config.basePrice.Add(c.config.perPagePrice.Mul(pages))

	cents, err := ToCents(total)
	if err != nil {
		return Calculation{}, err
	}

	return Calculation{
		BasePrice:    c.config.basePrice,
		PerPagePrice: c.config.perPagePrice,
		PageCount:    pageCount,
		TotalPrice:   total,
		TotalCents:   cents,
	}, nil
}

// DescribeBreakdown renders how the total for pageCount is composed.
// The text is for display only; charges always use Calculation.TotalCents.
func (c *Calculator) DescribeBreakdown(pageCount int) (string, error) {
	calc, err := c.Compute(pageCount)
	if err != nil {
		return "", err
	}

	base := FormatForDisplay(calc.BasePrice) + " base fee"
	if calc.PageCount == 1 {
		return base, nil
	}

	return fmt.Sprintf("%s + %s × %d pages", base, FormatForDisplay(calc.PerPagePrice), calc.PageCount), nil
}

// ToCents converts a USD amount to integer cents, rounding half away from zero.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(decimal.NewFromInt(centsPerUnit)).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount.String())
	}

	return cents.IntPart(), nil
}
