package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	_ "golang.org/x/image/webp" // register decoder
)

const (
	imageCounterName = "image"

	// ContentTypeJPEG is the MIME type of JPEG photos and scans.
	ContentTypeJPEG = "image/jpeg"

	// ContentTypePNG is the MIME type of PNG scans.
	ContentTypePNG = "image/png"

	// ContentTypeWebP is the MIME type of WebP photos.
	ContentTypeWebP = "image/webp"
)

// ImageCounter treats a photographed or scanned page as a single page.
type ImageCounter struct{}

// NewImageCounter creates an image page counter.
func NewImageCounter() *ImageCounter {
	return &ImageCounter{}
}

// CountPages checks that data decodes as an image and returns one.
func (c *ImageCounter) CountPages(ctx context.Context, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("image data cannot be empty")
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to decode image: %w", err)
	}

	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, errors.New("image has no pixels")
	}

	return 1, nil
}

// Name returns the counter identifier.
func (c *ImageCounter) Name() string {
	return imageCounterName
}

// ContentTypes returns the MIME types this counter understands.
func (c *ImageCounter) ContentTypes() []string {
	return []string{ContentTypeJPEG, ContentTypePNG, ContentTypeWebP}
}
