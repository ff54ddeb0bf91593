// Package app ensambla la aplicación HTTP a partir de dependencias ya construidas.
package app

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/email"
	"github.com/dropDatabas3/cursomvc/internal/http/router"
	"github.com/dropDatabas3/cursomvc/internal/http/services"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/rate"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	store "github.com/dropDatabas3/cursomvc/internal/store"
)

// Config contiene los parámetros de la app que no son dependencias.
type Config struct {
	OpTimeout time.Duration
	Version   string
}

// Deps contiene las dependencias crudas para construir la app.
type Deps struct {
	DAL    store.DataAccessLayer
	Issuer *jwtx.Issuer
	Hasher password.Hasher
	Mail   email.Dispatcher

	// ─── Opcionales ───
	LoginLimiter  rate.Limiter
	ForgotLimiter rate.Limiter
	Metrics       http.Handler // nil: /metrics no se monta en la API
}

// App representa la aplicación cableada.
type App struct {
	Handler  http.Handler
	Services *services.Services
}

// New crea y cablea la aplicación.
func New(cfg Config, deps Deps) *App {
	// 1. Services
	svcs := services.New(services.Deps{
		DAL:       deps.DAL,
		Issuer:    deps.Issuer,
		Hasher:    deps.Hasher,
		Mail:      deps.Mail,
		OpTimeout: cfg.OpTimeout,
		Version:   cfg.Version,
	})

	// 2. Router (controllers + middlewares)
	h := router.New(router.Deps{
		Services:      svcs,
		Tokens:        deps.Issuer,
		LoginLimiter:  deps.LoginLimiter,
		ForgotLimiter: deps.ForgotLimiter,
		Metrics:       deps.Metrics,
	})

	return &App{Handler: h, Services: svcs}
}
