// Package jwt emite y valida los access tokens del API (HS256).
package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
)

var (
	ErrInvalidToken  = errors.New("invalid_jwt")
	ErrInvalidIssuer = errors.New("invalid_issuer")
	ErrEmptySecret   = errors.New("jwt: empty secret")
)

// Claims son las claims propias del access token.
// "sub" lleva el ID del cliente; "roles" los nombres de rol.
type Claims struct {
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwtv5.RegisteredClaims
}

// Issuer firma tokens con un secreto compartido.
type Issuer struct {
	Iss       string        // "iss"
	Secret    []byte        // clave HMAC
	AccessTTL time.Duration // TTL del access token

	now func() time.Time
}

func NewIssuer(iss string, secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Iss: iss, Secret: secret, AccessTTL: ttl, now: time.Now}, nil
}

// Sign emite un access token para el principal.
// Devuelve el token firmado y su expiración.
func (i *Issuer) Sign(p *authz.Principal) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.AccessTTL)

	claims := Claims{
		Email: p.Email,
		Roles: p.RoleNames(),
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	signed, err := tk.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida firma (sólo HS256), iss, exp y nbf con una pequeña tolerancia,
// y reconstruye el principal. Roles desconocidos se ignoran.
func (i *Issuer) Parse(token string) (*authz.Principal, error) {
	var claims Claims
	tok, err := jwtv5.ParseWithClaims(token, &claims,
		func(t *jwtv5.Token) (any, error) { return i.Secret, nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithLeeway(30*time.Second),
		jwtv5.WithTimeFunc(i.now),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if i.Iss != "" && claims.Issuer != i.Iss {
		return nil, ErrInvalidIssuer
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidToken
	}

	p := &authz.Principal{ID: id, Email: claims.Email}
	for _, name := range claims.Roles {
		if r, err := types.ParseRole(name); err == nil {
			p.Roles = append(p.Roles, r)
		}
	}
	return p, nil
}
