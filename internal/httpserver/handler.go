package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/domain"
	"github.com/davidbz/docquote/internal/observability"
	"github.com/davidbz/docquote/internal/pricing"
)

const (
	multipartMemory    = 8 << 20 // bytes held in memory while parsing uploads
	multipartOverhead  = 1 << 20 // room for form fields and boundaries
	uploadFieldName    = "file"
	languageFieldName  = "language"
	defaultUploadLimit = 20 << 20
)

// Handler handles HTTP requests.
type Handler struct {
	quotes         *domain.QuoteService
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(quotes *domain.QuoteService, upload *config.UploadConfig) *Handler {
	maxUploadBytes := int64(defaultUploadLimit)
	if upload != nil && upload.MaxBytes > 0 {
		maxUploadBytes = upload.MaxBytes
	}

	return &Handler{
		quotes:         quotes,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes registers all endpoints on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/pricing", h.HandlePricing)
	mux.HandleFunc("POST /v1/quotes", h.HandleCreateQuote)
	mux.HandleFunc("POST /v1/documents/quote", h.HandleQuoteDocument)
	mux.HandleFunc("GET /v1/quotes/{id}", h.HandleGetQuote)
	mux.HandleFunc("POST /v1/quotes/{id}/checkout", h.HandleCheckout)
	mux.HandleFunc("GET /health", h.HandleHealth)

	return mux
}

// PricingResponse describes the fixed prices.
type PricingResponse struct {
	BasePrice            string   `json:"base_price"`
	PerPagePrice         string   `json:"per_page_price"`
	DisplayBasePrice     string   `json:"display_base_price"`
	DisplayPerPagePrice  string   `json:"display_per_page_price"`
	Currency             string   `json:"currency"`
	AcceptedContentTypes []string `json:"accepted_content_types"`
}

// HandlePricing returns the price list shown before upload.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	cfg := h.quotes.Calculator().Config()

	writeJSON(w, r, http.StatusOK, PricingResponse{
		BasePrice:            cfg.BasePrice().StringFixed(2),
		PerPagePrice:         cfg.PerPagePrice().StringFixed(2),
		DisplayBasePrice:     pricing.FormatForDisplay(cfg.BasePrice()),
		DisplayPerPagePrice:  pricing.FormatForDisplay(cfg.PerPagePrice()),
		Currency:             pricing.CurrencyCode(),
		AcceptedContentTypes: h.quotes.AcceptedContentTypes(r.Context()),
	})
}

// HandleCreateQuote prices a document by page count.
func (h *Handler) HandleCreateQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse request.
	var req domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ctx = observability.WithLanguage(ctx, req.Language)
	logger := observability.FromContext(ctx)
	logger.Info("quote request received",
		observability.Int("page_count", req.PageCount))

	quote, err := h.quotes.QuotePages(ctx, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.Info("quote created",
		observability.String("quote_id", quote.ID),
		observability.Int64("total_cents", quote.Pricing.TotalCents))

	writeJSON(w, r, http.StatusCreated, quote)
}

// HandleQuoteDocument prices an uploaded document.
func (h *Handler) HandleQuoteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, fmt.Errorf("%w: %w", domain.ErrDocumentTooLarge, err))
			return
		}
		http.Error(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		http.Error(w, fmt.Sprintf("missing %q file field", uploadFieldName), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Read one byte past the limit so oversized files are detected by validation.
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read upload: %v", err), http.StatusBadRequest)
		return
	}

	lang := r.FormValue(languageFieldName)
	ctx = observability.WithLanguage(ctx, lang)

	logger.Info("document upload received",
		observability.String("filename", header.Filename),
		observability.Int("size", len(data)))

	quote, err := h.quotes.QuoteDocument(ctx, domain.Document{Name: header.Filename, Data: data}, lang)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, quote)
}

// HandleGetQuote returns a stored quote.
func (h *Handler) HandleGetQuote(w http.ResponseWriter, r *http.Request) {
	ctx := observability.WithQuoteID(r.Context(), r.PathValue("id"))

	quote, err := h.quotes.GetQuote(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, r.WithContext(ctx), err)
		return
	}

	writeJSON(w, r, http.StatusOK, quote)
}

// HandleCheckout returns the payment intent for a quote.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := observability.WithQuoteID(r.Context(), r.PathValue("id"))

	intent, err := h.quotes.Checkout(ctx, r.PathValue("id"))
	if err != nil {
		writeError(w, r.WithContext(ctx), err)
		return
	}

	observability.FromContext(ctx).Info("checkout prepared",
		observability.Int64("amount_cents", intent.AmountCents))

	writeJSON(w, r, http.StatusOK, intent)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInvalidPageCount),
		errors.Is(err, domain.ErrUnsupportedLanguage),
		errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPriceMismatch):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := observability.FromContext(r.Context())

	if status == http.StatusInternalServerError {
		logger.Error("request failed", observability.Error(err))
		http.Error(w, "internal server error", status)
		return
	}

	logger.Info("request rejected",
		observability.Int("status", status),
		observability.Error(err))
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}
