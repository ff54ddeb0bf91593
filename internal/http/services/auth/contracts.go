// Package auth contiene los services de autenticación: login, refresh
// y recuperación de credencial.
package auth

import (
	"context"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/auth"
)

// LoginService define las operaciones de login.
type LoginService interface {
	// LoginPassword autentica un cliente con email/senha y emite un access token.
	LoginPassword(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error)
}

// RefreshService re-emite el token del principal actual.
type RefreshService interface {
	Refresh(ctx context.Context) (*dto.TokenResponse, error)
}

// ForgotService genera una nueva contraseña y la envía por email.
type ForgotService interface {
	Forgot(ctx context.Context, in dto.ForgotRequest) error
}
