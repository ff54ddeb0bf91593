// Package services es el composition root de los services HTTP.
//
// Cada dominio vive en su sub-paquete (services/{dominio}) con su Deps y su
// constructor. Este archivo sólo reparte las dependencias base.
package services

import (
	"time"

	"github.com/dropDatabas3/cursomvc/internal/email"
	"github.com/dropDatabas3/cursomvc/internal/http/services/auth"
	"github.com/dropDatabas3/cursomvc/internal/http/services/categories"
	"github.com/dropDatabas3/cursomvc/internal/http/services/clients"
	"github.com/dropDatabas3/cursomvc/internal/http/services/health"
	"github.com/dropDatabas3/cursomvc/internal/http/services/products"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	store "github.com/dropDatabas3/cursomvc/internal/store"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	// ─── Infraestructura ───
	DAL    store.DataAccessLayer
	Issuer *jwtx.Issuer
	Hasher password.Hasher
	Mail   email.Dispatcher

	// ─── Configuración ───
	OpTimeout time.Duration // timeout por llamada al store
	Version   string
}

// Services agrupa todos los sub-services por dominio.
type Services struct {
	Auth       auth.Services
	Categories categories.CategoryService
	Clients    clients.ClientService
	Products   products.ProductService
	Health     health.Services
}

// New crea todos los services. El principal se lee siempre del contexto del request.
func New(d Deps) *Services {
	principals := authz.ContextSource{}

	return &Services{
		Auth: auth.NewServices(auth.Deps{
			Clients:    d.DAL.Clients(),
			Hasher:     d.Hasher,
			Issuer:     d.Issuer,
			Mail:       d.Mail,
			Principals: principals,
			OpTimeout:  d.OpTimeout,
		}),
		Categories: categories.NewCategoryService(categories.Deps{
			Categories: d.DAL.Categories(),
			Principals: principals,
			OpTimeout:  d.OpTimeout,
		}),
		Clients: clients.NewClientService(clients.Deps{
			Clients:    d.DAL.Clients(),
			Hasher:     d.Hasher,
			Principals: principals,
			OpTimeout:  d.OpTimeout,
		}),
		Products: products.NewProductService(products.Deps{
			Products:  d.DAL.Products(),
			OpTimeout: d.OpTimeout,
		}),
		Health: health.NewServices(health.Deps{
			Store:   d.DAL,
			Version: d.Version,
		}),
	}
}
