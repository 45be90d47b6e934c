package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/davidbz/docquote/internal/observability"
)

const (
	pdfCounterName = "pdf"

	// ContentTypePDF is the MIME type of PDF documents.
	ContentTypePDF = "application/pdf"
)

// PDFCounter counts pages of PDF documents with pdfcpu.
type PDFCounter struct {
	conf *model.Configuration
}

// NewPDFCounter creates a PDF page counter.
// pdfcpu's on-disk config directory is disabled; counting never touches the filesystem.
func NewPDFCounter() *PDFCounter {
	api.DisableConfigDir()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &PDFCounter{
		conf: conf,
	}
}

// CountPages returns the number of pages in a PDF.
func (c *PDFCounter) CountPages(ctx context.Context, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("pdf data cannot be empty")
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pageCount, err := api.PageCount(bytes.NewReader(data), c.conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	if pageCount < 1 {
		return 0, errors.New("pdf has no pages")
	}

	observability.FromContext(ctx).Debug("pdf pages counted",
		observability.Int("pages", pageCount),
		observability.Int("size", len(data)))

	return pageCount, nil
}

// Name returns the counter identifier.
func (c *PDFCounter) Name() string {
	return pdfCounterName
}

// ContentTypes returns the MIME types this counter understands.
func (c *PDFCounter) ContentTypes() []string {
	return []string{ContentTypePDF}
}
