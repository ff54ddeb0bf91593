package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	"github.com/dropDatabas3/cursomvc/internal/http/errors"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
)

// TokenParser valida un access token y reconstruye el principal.
// *jwt.Issuer lo implementa.
type TokenParser interface {
	Parse(token string) (*authz.Principal, error)
}

func bearerToken(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(ah[len("Bearer "):])
	return raw, raw != ""
}

func withPrincipal(r *http.Request, p *authz.Principal) *http.Request {
	ctx := authz.WithPrincipal(r.Context(), p)
	ctx = logger.ToContext(ctx, logger.FromWithFields(ctx, logger.PrincipalID(p.ID)))
	return r.WithContext(ctx)
}

// OptionalAuth intenta validar el token JWT pero NO falla si no está presente
// o es inválido: el request sigue como anónimo y los services deciden.
func OptionalAuth(parser TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			p, err := parser.Parse(raw)
			if err != nil {
				logger.From(r.Context()).Debug("ignoring invalid bearer token", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, withPrincipal(r, p))
		})
	}
}

// RequireAuth valida Authorization: Bearer <JWT> y guarda el principal en el contexto.
// Si el token es inválido o no está presente, responde 401.
func RequireAuth(parser TokenParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// OptionalAuth pudo haberlo resuelto antes
			if authz.FromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				errors.WriteError(w, r, errors.ErrUnauthorized)
				return
			}
			p, err := parser.Parse(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, r, errors.ErrTokenInvalid)
				return
			}
			next.ServeHTTP(w, withPrincipal(r, p))
		})
	}
}

// RequireRole exige al menos uno de los roles. Debe ir después de RequireAuth;
// sin principal responde 401.
func RequireRole(roles ...types.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := authz.FromContext(r.Context())
			if p == nil {
				errors.WriteError(w, r, errors.ErrUnauthorized)
				return
			}
			for _, role := range roles {
				if p.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			errors.WriteError(w, r, errors.ErrForbidden)
		})
	}
}
