// Package router arma el chi.Router del API: middlewares globales y rutas
// por dominio. Cada dominio registra sus rutas en su propio archivo.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/auth"
	catctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/categories"
	clictrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/clients"
	healthctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/health"
	prodctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/products"
	httperrors "github.com/dropDatabas3/cursomvc/internal/http/errors"
	mw "github.com/dropDatabas3/cursomvc/internal/http/middlewares"
	"github.com/dropDatabas3/cursomvc/internal/http/services"
	"github.com/dropDatabas3/cursomvc/internal/metrics"
	"github.com/dropDatabas3/cursomvc/internal/rate"
)

// Deps contiene lo necesario para construir el router.
type Deps struct {
	Services *services.Services
	Tokens   mw.TokenParser

	// Opcionales: nil desactiva el rate limit del endpoint.
	LoginLimiter  rate.Limiter
	ForgotLimiter rate.Limiter

	// Metrics se monta en /metrics si no es nil (sin listener propio).
	Metrics http.Handler
}

// New construye el handler raíz del API.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	// request id primero para que logging y recover lo vean
	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithRecover(),
		mw.WithSecurityHeaders(),
		metrics.WithMetrics,
		mw.OptionalAuth(d.Tokens),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, r, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, r, httperrors.ErrMethodNotAllowed)
	})

	s := d.Services
	RegisterHealthRoutes(r, HealthRouterDeps{
		Controllers: healthctrl.NewControllers(s.Health),
		Metrics:     d.Metrics,
	})
	RegisterAuthRoutes(r, AuthRouterDeps{
		Controllers:   authctrl.NewControllers(s.Auth),
		Tokens:        d.Tokens,
		LoginLimiter:  d.LoginLimiter,
		ForgotLimiter: d.ForgotLimiter,
	})
	RegisterCatalogRoutes(r, CatalogRouterDeps{
		Categories: catctrl.NewCategoryController(s.Categories),
		Products:   prodctrl.NewProductController(s.Products),
		Tokens:     d.Tokens,
	})
	RegisterClientRoutes(r, ClientRouterDeps{
		Controller: clictrl.NewClientController(s.Clients),
	})
	return r
}
