// Package authz resuelve el principal del request y decide el acceso
// a recursos con dueño.
//
// La regla es única: ADMIN accede a todo; cualquier otro principal sólo a
// los recursos cuyo ownerID coincide con su ID. Sin principal no hay acceso.
package authz

import (
	"context"
	"errors"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
)

// ErrAccessDenied se retorna cuando el principal no puede operar sobre el recurso.
var ErrAccessDenied = errors.New("acesso negado")

// Principal es la identidad autenticada del request. Nunca se persiste.
type Principal struct {
	ID    int64
	Email string
	Roles []types.Role
}

// HasRole indica si el principal tiene el rol.
func (p *Principal) HasRole(r types.Role) bool {
	if p == nil {
		return false
	}
	for _, pr := range p.Roles {
		if pr == r {
			return true
		}
	}
	return false
}

// IsAdmin es un atajo para HasRole(types.RoleAdmin).
func (p *Principal) IsAdmin() bool { return p.HasRole(types.RoleAdmin) }

// RoleNames retorna los roles como strings ("ROLE_ADMIN", ...), útil para logs y claims.
func (p *Principal) RoleNames() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		out = append(out, r.String())
	}
	return out
}

// Authorize permite el acceso si p es ADMIN o es el dueño.
// Un principal nil siempre es denegado.
func Authorize(p *Principal, ownerID int64) error {
	if p == nil {
		return ErrAccessDenied
	}
	if p.IsAdmin() || p.ID == ownerID {
		return nil
	}
	return ErrAccessDenied
}

// PrincipalSource resuelve el principal del request en curso.
// Retorna nil si el request es anónimo.
type PrincipalSource interface {
	Current(ctx context.Context) *Principal
}

type ctxKey struct{}

// WithPrincipal inyecta el principal en el contexto. Lo usa el middleware de auth.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext extrae el principal del contexto, o nil.
func FromContext(ctx context.Context) *Principal {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(ctxKey{}).(*Principal)
	return p
}

// ContextSource implementa PrincipalSource leyendo del contexto.
type ContextSource struct{}

func (ContextSource) Current(ctx context.Context) *Principal { return FromContext(ctx) }

// Static es un PrincipalSource fijo, para tests y comandos CLI.
type Static struct{ P *Principal }

func (s Static) Current(context.Context) *Principal { return s.P }
