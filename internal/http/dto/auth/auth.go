// Package auth contiene DTOs de login, refresh y recuperación de credencial.
package auth

// LoginRequest es el body de POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// ForgotRequest es el body de POST /auth/forgot.
type ForgotRequest struct {
	Email string `json:"email"`
}

// TokenResponse se devuelve en login y refresh.
// El token también viaja en el header Authorization.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
