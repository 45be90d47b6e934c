package domain

import "errors"

var (
	// ErrQuoteNotFound indicates a missing or expired quote.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrQuoteStatusChanged indicates a status update lost to a concurrent one.
	ErrQuoteStatusChanged = errors.New("quote status changed")

	// ErrPriceMismatch indicates the stored charge no longer matches the live price.
	ErrPriceMismatch = errors.New("quoted price does not match current price")

	// ErrEmptyDocument indicates an upload without content.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrDocumentTooLarge indicates an upload above the size limit.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")

	// ErrUnsupportedDocument indicates a file type no page counter accepts.
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// ErrUnsupportedLanguage indicates an unknown explanation language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
