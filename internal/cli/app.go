// Package cli implements the docquote command-line tool.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/observability"
	"github.com/davidbz/docquote/internal/pricing"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const defaultMaxBytes = 20 << 20

// ErrUnknownFormat indicates an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

// PriceView is the printable result of pricing a page count.
type PriceView struct {
	Document     string `json:"document,omitempty"      yaml:"document,omitempty"`
	ContentType  string `json:"content_type,omitempty"  yaml:"content_type,omitempty"`
	Pages        int    `json:"pages"                   yaml:"pages"`
	BasePrice    string `json:"base_price"              yaml:"base_price"`
	PerPagePrice string `json:"per_page_price"          yaml:"per_page_price"`
	TotalPrice   string `json:"total_price"             yaml:"total_price"`
	TotalCents   int64  `json:"total_cents"             yaml:"total_cents"`
	Display      string `json:"display"                 yaml:"display"`
	Breakdown    string `json:"breakdown"               yaml:"breakdown"`
}

// PricingView is the printable price list.
type PricingView struct {
	BasePrice    string   `json:"base_price"     yaml:"base_price"`
	PerPagePrice string   `json:"per_page_price" yaml:"per_page_price"`
	Currency     string   `json:"currency"       yaml:"currency"`
	Accepts      []string `json:"accepts"        yaml:"accepts"`
}

type commands struct {
	calculator *pricing.Calculator
	counters   domain.PageCounterRegistry
}

// NewApp builds the CLI application around a calculator and page counters.
func NewApp(calculator *pricing.Calculator, counters domain.PageCounterRegistry) *cli.App {
	c := &commands{
		calculator: calculator,
		counters:   counters,
	}

	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: text, json or yaml",
		Value:   FormatText,
	}

	return &cli.App{
		Name:  "docquote",
		Usage: "price documents for plain-language explanation",
		Commands: []*cli.Command{
			{
				Name:  "price",
				Usage: "price a document by page count",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "pages",
						Aliases:  []string{"n"},
						Usage:    "number of pages",
						Required: true,
					},
					formatFlag,
				},
				Action: c.priceAction,
			},
			{
				Name:      "count",
				Usage:     "count the pages of a PDF or image and price it",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "max-bytes",
						Usage: "largest accepted file size",
						Value: defaultMaxBytes,
					},
					formatFlag,
				},
				Action: c.countAction,
			},
			{
				Name:   "pricing",
				Usage:  "show the price list",
				Flags:  []cli.Flag{formatFlag},
				Action: c.pricingAction,
			},
		},
	}
}

func (c *commands) priceAction(ctx *cli.Context) error {
	view, err := c.priceView(ctx.Int("pages"))
	if err != nil {
		return err
	}

	return render(ctx.App.Writer, ctx.String("format"), view, func(w io.Writer) error {
		return writeTextPrice(w, view)
	})
}

func (c *commands) countAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument, got %d", ctx.NArg())
	}
	path := ctx.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	view, err := c.countView(ctx.Context, domain.Document{Name: path, Data: data}, ctx.Int64("max-bytes"))
	if err != nil {
		return err
	}

	return render(ctx.App.Writer, ctx.String("format"), view, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", view.Document, view.ContentType); err != nil {
			return err
		}
		return writeTextPrice(w, view)
	})
}

func (c *commands) pricingAction(ctx *cli.Context) error {
	cfg := c.calculator.Config()
	view := &PricingView{
		BasePrice:    pricing.FormatForDisplay(cfg.BasePrice()),
		PerPagePrice: pricing.FormatForDisplay(cfg.PerPagePrice()),
		Currency:     pricing.CurrencyCode(),
		Accepts:      c.counters.ContentTypes(ctx.Context),
	}

	return render(ctx.App.Writer, ctx.String("format"), view, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Base fee:  %s\nPer page:  %s\nAccepts:   %v\n",
			view.BasePrice, view.PerPagePrice, view.Accepts)
		return err
	})
}

func (c *commands) countView(ctx context.Context, doc domain.Document, maxBytes int64) (*PriceView, error) {
	contentType, err := domain.ValidateDocument(doc, maxBytes, c.counters.ContentTypes(ctx))
	if err != nil {
		return nil, err
	}

	counter, err := c.counters.ForContentType(ctx, contentType)
	if err != nil {
		return nil, err
	}

	pages, err := counter.CountPages(ctx, doc.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	observability.FromContext(ctx).Debug("pages counted",
		observability.String("document", doc.Name),
		observability.Int("pages", pages))

	view, err := c.priceView(pages)
	if err != nil {
		return nil, err
	}
	view.Document = doc.Name
	view.ContentType = contentType

	return view, nil
}

func (c *commands) priceView(pages int) (*PriceView, error) {
	calc, err := c.calculator.Compute(pages)
	if err != nil {
		return nil, err
	}

	breakdown, err := c.calculator.DescribeBreakdown(pages)
	if err != nil {
		return nil, err
	}

	return &PriceView{
		Pages:        calc.PageCount,
		BasePrice:    calc.BasePrice.StringFixed(2),
		PerPagePrice: calc.PerPagePrice.StringFixed(2),
		TotalPrice:   calc.TotalPrice.StringFixed(2),
		TotalCents:   calc.TotalCents,
		Display:      pricing.FormatForDisplay(calc.TotalPrice),
		Breakdown:    breakdown,
	}, nil
}

func writeTextPrice(w io.Writer, view *PriceView) error {
	unit := "pages"
	if view.Pages == 1 {
		unit = "page"
	}
	_, err := fmt.Fprintf(w, "%d %s: %s (%s)\n", view.Pages, unit, view.Display, view.Breakdown)
	return err
}

func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case FormatText, "":
		return text(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
