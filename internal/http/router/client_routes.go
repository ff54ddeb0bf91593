package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/clients"
)

// ClientRouterDeps contiene las dependencias de /clientes.
type ClientRouterDeps struct {
	Controller *ctrl.ClientController
}

// RegisterClientRoutes registra /clientes. El registro (POST) es público;
// el resto pasa por el guard de dueño-o-ADMIN en el service.
func RegisterClientRoutes(r chi.Router, deps ClientRouterDeps) {
	c := deps.Controller

	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", c.List)
		r.Post("/", c.Create)
		r.Get("/page", c.Page)
		r.Get("/email", c.GetByEmail)
		r.Get("/{id}", c.Get)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}
