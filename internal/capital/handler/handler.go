package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ownergraph/internal/capital"
	"ownergraph/internal/company/models"
	"ownergraph/internal/registry"
	dErrors "ownergraph/pkg/domain-errors"
	"ownergraph/pkg/platform/httputil"
	"ownergraph/pkg/requestcontext"
)

// Service defines the capital operation the handler exposes.
type Service interface {
	Capital(ctx context.Context, number string) ([]models.CapitalItem, error)
}

// Handler wires the capital endpoint and the shareholding calculator.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a capital handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts capital endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/company/{companyNumber}/capital", h.HandleCapital)
	r.Post("/calculator/shareholding", h.HandleShareholding)
}

// HandleCapital handles GET /company/{companyNumber}/capital requests. A
// company with no structured capital data returns an empty list, not 404.
func (h *Handler) HandleCapital(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	number := models.NormalizeCompanyNumber(chi.URLParam(r, "companyNumber"))
	if !models.ValidCompanyNumber(number) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid company number: expected 8 characters or a 2-letter prefix followed by digits"))
		return
	}

	items, err := h.service.Capital(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "capital lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"company_number", number,
			"error", err,
		)
		httputil.WriteError(w, registry.DomainError(err))
		return
	}
	if items == nil {
		items = []models.CapitalItem{}
	}

	httputil.WriteJSON(w, http.StatusOK, capitalResponse{
		CompanyNumber: number,
		Count:         len(items),
		Items:         items,
	})
}

// HandleShareholding handles POST /calculator/shareholding requests. The
// calculation uses only the figures in the request body.
func (h *Handler) HandleShareholding(w http.ResponseWriter, r *http.Request) {
	var in capital.ShareholdingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "request body must be valid JSON"))
		return
	}

	result, err := capital.CalculateShareholding(in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

type capitalResponse struct {
	CompanyNumber string               `json:"company_number"`
	Count         int                  `json:"count"`
	Items         []models.CapitalItem `json:"items"`
}
