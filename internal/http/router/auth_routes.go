package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/auth"
	mw "github.com/dropDatabas3/cursomvc/internal/http/middlewares"
	"github.com/dropDatabas3/cursomvc/internal/rate"
)

// AuthRouterDeps contiene las dependencias para el router auth.
type AuthRouterDeps struct {
	Controllers   *ctrl.Controllers
	Tokens        mw.TokenParser
	LoginLimiter  rate.Limiter // Opcional
	ForgotLimiter rate.Limiter // Opcional
}

// RegisterAuthRoutes registra login, refresh y forgot.
func RegisterAuthRoutes(r chi.Router, deps AuthRouterDeps) {
	c := deps.Controllers

	// POST /login - credenciales → token (header + body)
	r.With(authHandler(deps.LoginLimiter, "login")...).Post("/login", c.Login.Login)

	// POST /auth/forgot - genera y envía una nueva contraseña
	r.With(authHandler(deps.ForgotLimiter, "forgot")...).Post("/auth/forgot", c.Forgot.Forgot)

	// POST /auth/refresh_token - re-emite el token del principal vigente
	r.With(mw.WithNoStore(), mw.RequireAuth(deps.Tokens)).Post("/auth/refresh_token", c.Refresh.Refresh)
}

// authHandler arma el chain de los endpoints públicos de credenciales.
func authHandler(limiter rate.Limiter, endpoint string) []func(next http.Handler) http.Handler {
	chain := []func(next http.Handler) http.Handler{mw.WithNoStore()}

	// Rate limiting por IP + path si está configurado
	if limiter != nil {
		chain = append(chain, mw.WithRateLimit(mw.RateLimitConfig{
			Limiter:  limiter,
			KeyFunc:  mw.IPPathRateKey,
			Endpoint: endpoint,
		}))
	}
	return chain
}
