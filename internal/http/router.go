// Package httpapi assembles the public HTTP surface from feature handlers.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ownergraph/internal/platform/middleware"
	"ownergraph/pkg/platform/httputil"
)

// Registrar mounts one feature's routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one dependency for the health endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter wires middleware, operational endpoints, and feature routes.
func NewRouter(checks []HealthCheck, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", handleHealth(checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

// handleHealth reports ok only when every registered dependency check
// passes; a failing dependency degrades the response to 503 with the
// failure attached under the dependency's name.
func handleHealth(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for _, check := range checks {
			if err := check.Check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[check.Name] = err.Error()
			}
		}
		httputil.WriteJSON(w, status, body)
	}
}
