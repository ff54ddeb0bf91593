// Package health contiene el controller de health check.
package health

import (
	"net/http"

	"github.com/dropDatabas3/cursomvc/internal/http/helpers"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/health"
)

// Controllers agrupa todos los controllers del dominio health.
type Controllers struct {
	Health *HealthController
}

// NewControllers crea el agregador de controllers health.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Health: NewHealthController(s.Health),
	}
}

type HealthController struct {
	service svc.HealthService
}

func NewHealthController(s svc.HealthService) *HealthController {
	return &HealthController{service: s}
}

// Readyz maneja GET /healthz: 200 si el store responde, 503 si no.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	resp, ok := c.service.Check(r.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, status, resp)
}
