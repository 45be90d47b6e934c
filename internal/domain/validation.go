package domain

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// DetectContentType sniffs the MIME type of data, without parameters.
func DetectContentType(data []byte) string {
	contentType, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return strings.TrimSpace(contentType)
}

// ValidateDocument checks an upload against the size limit and accepted types
// and returns its sniffed content type. A maxBytes of zero disables the size check.
func ValidateDocument(doc Document, maxBytes int64, accepted []string) (string, error) {
	if len(doc.Data) == 0 {
		return "", ErrEmptyDocument
	}

	if maxBytes > 0 && int64(len(doc.Data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrDocumentTooLarge, len(doc.Data), maxBytes)
	}

	contentType := DetectContentType(doc.Data)
	if !slices.Contains(accepted, contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDocument, contentType)
	}

	return contentType, nil
}
