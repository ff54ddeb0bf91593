// Package health contiene el service de health check.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/health"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

// Pinger es lo mínimo que se necesita del store.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Deps contiene las dependencias del health check.
type Deps struct {
	Store   Pinger
	Version string
	Timeout time.Duration // default 2s
}

// HealthService reporta el estado de los componentes.
type HealthService interface {
	// Check retorna ready=true sólo si todos los componentes responden.
	Check(ctx context.Context) (dto.HealthResponse, bool)
}

// Services agrupa todos los services del dominio health.
type Services struct {
	Health HealthService
}

// NewServices crea el agregador de services health.
func NewServices(d Deps) Services {
	return Services{
		Health: NewHealthService(d),
	}
}

type healthService struct {
	deps Deps
	now  func() time.Time
}

func NewHealthService(d Deps) HealthService {
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Second
	}
	return &healthService{deps: d, now: time.Now}
}

func (s *healthService) Check(ctx context.Context) (dto.HealthResponse, bool) {
	resp := dto.HealthResponse{
		Status:     "ready",
		Components: map[string]dto.HealthStatus{},
		Version:    s.deps.Version,
		Timestamp:  s.now().UTC(),
	}

	if s.deps.Store == nil {
		resp.Status = "unavailable"
		resp.Components["store"] = dto.HealthStatus{Status: "error", Message: "not configured"}
		return resp, false
	}

	pctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	name := "store:" + s.deps.Store.Name()
	if err := s.deps.Store.Ping(pctx); err != nil {
		logger.From(ctx).Warn("health ping failed", logger.Component(name), logger.Err(err))
		resp.Status = "unavailable"
		resp.Components[name] = dto.HealthStatus{Status: "error", Message: err.Error()}
		return resp, false
	}
	resp.Components[name] = dto.HealthStatus{Status: "ok"}
	return resp, true
}
