package pricing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const displaySymbol = "$"

// Display is pinned to US English and USD whatever language the explanation is in.
//
//nolint:gochecknoglobals // immutable locale settings
var (
	displayLocale   = language.AmericanEnglish
	displayCurrency = currency.USD
)

// FormatForDisplay renders amount as a US dollar string with two fraction digits
// and grouped thousands, e.g. 1.09 becomes "$1.09" and 1234.5 becomes "$1,234.50".
// The digits come from the decimal itself; only the whole units pass through the
// printer, as an exact int64. Whole units beyond int64 are left ungrouped.
func FormatForDisplay(amount decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(displayCurrency)

	rounded := amount.Round(int32(scale))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole, fraction, _ := strings.Cut(rounded.StringFixed(int32(scale)), ".")
	if units, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = message.NewPrinter(displayLocale).Sprint(number.Decimal(units))
	}

	if fraction == "" {
		return sign + displaySymbol + whole
	}
	return sign + displaySymbol + whole + "." + fraction
}

// CurrencyCode returns the lowercase ISO 4217 code payment processors expect.
func CurrencyCode() string {
	return strings.ToLower(displayCurrency.String())
}

