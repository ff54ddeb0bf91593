package auth

import (
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/email"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
)

// Deps contiene las dependencias del dominio auth.
type Deps struct {
	Clients    repository.ClientRepository
	Hasher     password.Hasher
	Issuer     *jwtx.Issuer
	Mail       email.Dispatcher
	Principals authz.PrincipalSource
	OpTimeout  time.Duration
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	Login   LoginService
	Refresh RefreshService
	Forgot  ForgotService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		Login: NewLoginService(LoginDeps{
			Clients:   d.Clients,
			Hasher:    d.Hasher,
			Issuer:    d.Issuer,
			OpTimeout: d.OpTimeout,
		}),
		Refresh: NewRefreshService(RefreshDeps{
			Issuer:     d.Issuer,
			Principals: d.Principals,
		}),
		Forgot: NewForgotService(ForgotDeps{
			Clients:   d.Clients,
			Hasher:    d.Hasher,
			Mail:      d.Mail,
			OpTimeout: d.OpTimeout,
		}),
	}
}
