package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ownergraph/internal/ownership"
	"ownergraph/internal/registry"
	dErrors "ownergraph/pkg/domain-errors"
	"ownergraph/pkg/platform/httputil"
	"ownergraph/pkg/requestcontext"
)

// Service defines the traversal operation the handler exposes.
type Service interface {
	TraverseToDepth(ctx context.Context, seed string, maxDepth int) (*ownership.Report, error)
}

// Handler wires the ownership traversal endpoint to the engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an ownership handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the ownership endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/company/{companyNumber}/ownership", h.HandleOwnership)
}

// HandleOwnership handles GET /company/{companyNumber}/ownership requests.
// An optional depth query parameter lowers the analysis depth for this run;
// it never raises it above the configured maximum.
func (h *Handler) HandleOwnership(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seed := chi.URLParam(r, "companyNumber")
	start := time.Now()

	depth := 0
	if v := r.URL.Query().Get("depth"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "depth must be a positive integer"))
			return
		}
		depth = n
	}

	report, err := h.service.TraverseToDepth(ctx, seed, depth)
	if err != nil {
		h.logger.WarnContext(ctx, "ownership traversal failed",
			"request_id", requestcontext.RequestID(ctx),
			"seed", seed,
			"error", err,
		)
		httputil.WriteError(w, registry.DomainError(err))
		return
	}

	h.logger.InfoContext(ctx, "ownership traversal served",
		"request_id", requestcontext.RequestID(ctx),
		"run_id", report.RunID,
		"seed", report.Seed,
		"nodes_visited", report.NodesVisited,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, report)
}
