package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ownergraph/internal/company/models"
	"ownergraph/internal/registry"
	dErrors "ownergraph/pkg/domain-errors"
	"ownergraph/pkg/platform/httputil"
	"ownergraph/pkg/requestcontext"
)

// Service defines the company operations the handler exposes.
type Service interface {
	Profile(ctx context.Context, number string) (*models.CompanyProfile, error)
	Controllers(ctx context.Context, number string) ([]models.ControllingParty, error)
}

// Handler wires company endpoints to the company service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a company handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts company endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/company/{companyNumber}", h.HandleProfile)
	r.Get("/company/{companyNumber}/controllers", h.HandleControllers)
}

// HandleProfile handles GET /company/{companyNumber} requests.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	number, ok := companyNumber(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "company profile lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"company_number", number,
			"error", err,
		)
		httputil.WriteError(w, registry.DomainError(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// HandleControllers handles GET /company/{companyNumber}/controllers
// requests. An empty controller list is a meaningful result and returns 200.
func (h *Handler) HandleControllers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	number, ok := companyNumber(w, r)
	if !ok {
		return
	}

	parties, err := h.service.Controllers(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "company controllers lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"company_number", number,
			"error", err,
		)
		httputil.WriteError(w, registry.DomainError(err))
		return
	}
	if parties == nil {
		parties = []models.ControllingParty{}
	}

	httputil.WriteJSON(w, http.StatusOK, controllersResponse{
		CompanyNumber: number,
		Count:         len(parties),
		Controllers:   parties,
	})
}

type controllersResponse struct {
	CompanyNumber string                    `json:"company_number"`
	Count         int                       `json:"count"`
	Controllers   []models.ControllingParty `json:"controllers"`
}

func companyNumber(w http.ResponseWriter, r *http.Request) (string, bool) {
	number := models.NormalizeCompanyNumber(chi.URLParam(r, "companyNumber"))
	if !models.ValidCompanyNumber(number) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid company number: expected 8 characters or a 2-letter prefix followed by digits"))
		return "", false
	}
	return number, true
}
