package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/health"
)

// HealthRouterDeps contiene las dependencias para las rutas de health.
type HealthRouterDeps struct {
	Controllers *ctrl.Controllers
	Metrics     http.Handler
}

// RegisterHealthRoutes registra /healthz y, si corresponde, /metrics.
func RegisterHealthRoutes(r chi.Router, deps HealthRouterDeps) {
	// GET /healthz - 200 si el store responde, 503 si no
	r.Get("/healthz", deps.Controllers.Health.Readyz)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
}
