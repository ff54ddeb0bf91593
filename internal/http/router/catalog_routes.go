package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	catctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/categories"
	prodctrl "github.com/dropDatabas3/cursomvc/internal/http/controllers/products"
	mw "github.com/dropDatabas3/cursomvc/internal/http/middlewares"
)

// CatalogRouterDeps contiene las dependencias de /categorias y /produtos.
type CatalogRouterDeps struct {
	Categories *catctrl.CategoryController
	Products   *prodctrl.ProductController
	Tokens     mw.TokenParser
}

// RegisterCatalogRoutes registra categorías (lectura pública, escritura ADMIN)
// y productos (sólo lectura).
func RegisterCatalogRoutes(r chi.Router, deps CatalogRouterDeps) {
	c := deps.Categories

	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", c.List)
		r.Get("/page", c.Page)
		r.Get("/{id}", c.Get)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(deps.Tokens), mw.RequireRole(types.RoleAdmin))
			r.Post("/", c.Create)
			r.Put("/{id}", c.Update)
			r.Delete("/{id}", c.Delete)
		})
	})

	p := deps.Products
	r.Route("/produtos", func(r chi.Router) {
		r.Get("/", p.Search)
		r.Get("/{id}", p.Get)
	})
}
