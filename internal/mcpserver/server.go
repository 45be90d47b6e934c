// Package mcpserver exposes document pricing as MCP tools.
package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/observability"
	"github.com/davidbz/docquote/internal/pricing"
)

const (
	serverName    = "docquote"
	serverVersion = "v0.1.0"

	maxDocumentBytes = 20 << 20
)

// QuotePagesQuery is the input of the quote-pages tool.
type QuotePagesQuery struct {
	PageCount int `json:"page_count" jsonschema:"number of pages in the document, at least 1"`
}

// QuoteDocumentQuery is the input of the quote-document tool.
type QuoteDocumentQuery struct {
	Name    string `json:"name,omitempty" jsonschema:"file name, for display only"`
	RawData []byte `json:"raw_data"       jsonschema:"PDF, JPEG, PNG or WebP bytes"`
}

// QuoteResponse is the structured result of both tools.
type QuoteResponse struct {
	PageCount    int    `json:"page_count"`
	ContentType  string `json:"content_type,omitempty"`
	BasePrice    string `json:"base_price"`
	PerPagePrice string `json:"per_page_price"`
	TotalPrice   string `json:"total_price"`
	TotalCents   int64  `json:"total_cents"`
	Currency     string `json:"currency"`
	Display      string `json:"display"`
	Breakdown    string `json:"breakdown"`
}

// Tools builds tool handlers around a calculator and page counters.
type Tools struct {
	calculator *pricing.Calculator
	counters   domain.PageCounterRegistry
}

// NewTools creates the tool handlers.
func NewTools(calculator *pricing.Calculator, counters domain.PageCounterRegistry) *Tools {
	return &Tools{
		calculator: calculator,
		counters:   counters,
	}
}

// NewServer creates an MCP server with the pricing tools registered.
func NewServer(tools *Tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, QuotePagesTool(), tools.QuotePages)
	mcp.AddTool(server, QuoteDocumentTool(), tools.QuoteDocument)

	return server
}

// QuotePagesTool describes the quote-pages tool.
func QuotePagesTool() *mcp.Tool {
	inputschema, err := jsonschema.For[QuotePagesQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "quote-pages",
		Description: "Price a plain-language explanation of a document with the given number of pages",
		InputSchema: inputschema,
	}
}

// QuoteDocumentTool describes the quote-document tool.
func QuoteDocumentTool() *mcp.Tool {
	inputschema, err := jsonschema.For[QuoteDocumentQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "quote-document",
		Description: "Count the pages of a PDF or image and price its explanation",
		InputSchema: inputschema,
	}
}

// QuotePages handles the quote-pages tool.
func (t *Tools) QuotePages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	query QuotePagesQuery,
) (*mcp.CallToolResult, *QuoteResponse, error) {
	resp, err := t.quote(query.PageCount)
	if err != nil {
		return nil, nil, err
	}

	observability.FromContext(ctx).Info("pages quoted",
		observability.Int("page_count", resp.PageCount),
		observability.Int64("total_cents", resp.TotalCents))

	return textResult(resp), resp, nil
}

// QuoteDocument handles the quote-document tool.
func (t *Tools) QuoteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	query QuoteDocumentQuery,
) (*mcp.CallToolResult, *QuoteResponse, error) {
	if len(query.RawData) == 0 {
		return nil, nil, errors.New("no data provided")
	}

	doc := domain.Document{Name: query.Name, Data: query.RawData}
	contentType, err := domain.ValidateDocument(doc, maxDocumentBytes, t.counters.ContentTypes(ctx))
	if err != nil {
		return nil, nil, err
	}

	counter, err := t.counters.ForContentType(ctx, contentType)
	if err != nil {
		return nil, nil, err
	}

	pages, err := counter.CountPages(ctx, doc.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count pages: %w", err)
	}

	resp, err := t.quote(pages)
	if err != nil {
		return nil, nil, err
	}
	resp.ContentType = contentType

	observability.FromContext(ctx).Info("document quoted",
		observability.String("content_type", contentType),
		observability.Int("page_count", pages),
		observability.Int64("total_cents", resp.TotalCents))

	return textResult(resp), resp, nil
}

func (t *Tools) quote(pageCount int) (*QuoteResponse, error) {
	calc, err := t.calculator.Compute(pageCount)
	if err != nil {
		return nil, err
	}

	breakdown, err := t.calculator.DescribeBreakdown(pageCount)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		PageCount:    calc.PageCount,
		BasePrice:    calc.BasePrice.StringFixed(2),
		PerPagePrice: calc.PerPagePrice.StringFixed(2),
		TotalPrice:   calc.TotalPrice.StringFixed(2),
		TotalCents:   calc.TotalCents,
		Currency:     pricing.CurrencyCode(),
		Display:      pricing.FormatForDisplay(calc.TotalPrice),
		Breakdown:    breakdown,
	}, nil
}

func textResult(resp *QuoteResponse) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("%d pages cost %s (%s).", resp.PageCount, resp.Display, resp.Breakdown),
			},
		},
	}
}
