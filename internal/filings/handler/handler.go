package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ownergraph/internal/company/models"
	dErrors "ownergraph/pkg/domain-errors"
	"ownergraph/pkg/platform/httputil"
)

// Service defines the filings operation the handler exposes. The filter fails
// soft, so there is no error to surface.
type Service interface {
	Relevant(ctx context.Context, number string) []models.FilingSummary
}

// Handler wires the filings endpoint to the relevance filter.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a filings handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the filings endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/company/{companyNumber}/filings", h.HandleFilings)
}

// HandleFilings handles GET /company/{companyNumber}/filings requests.
func (h *Handler) HandleFilings(w http.ResponseWriter, r *http.Request) {
	number := models.NormalizeCompanyNumber(chi.URLParam(r, "companyNumber"))
	if !models.ValidCompanyNumber(number) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid company number: expected 8 characters or a 2-letter prefix followed by digits"))
		return
	}

	filings := h.service.Relevant(r.Context(), number)
	if filings == nil {
		filings = []models.FilingSummary{}
	}

	httputil.WriteJSON(w, http.StatusOK, filingsResponse{
		CompanyNumber: number,
		Count:         len(filings),
		Filings:       filings,
	})
}

type filingsResponse struct {
	CompanyNumber string                 `json:"company_number"`
	Count         int                    `json:"count"`
	Filings       []models.FilingSummary `json:"filings"`
}
