// Package auth contiene los controllers de login, refresh y forgot.
package auth

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/cursomvc/internal/http/errors"
	"github.com/dropDatabas3/cursomvc/internal/http/helpers"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/auth"
)

// Controllers agrupa los controllers del dominio auth.
type Controllers struct {
	Login   *LoginController
	Refresh *RefreshController
	Forgot  *ForgotController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Login:   &LoginController{service: s.Login},
		Refresh: &RefreshController{service: s.Refresh},
		Forgot:  &ForgotController{service: s.Forgot},
	}
}

type LoginController struct {
	service svc.LoginService
}

// Login maneja POST /login. El token va en el body y en el header Authorization.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}

	out, err := c.service.LoginPassword(r.Context(), req)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	writeToken(w, out)
}

type RefreshController struct {
	service svc.RefreshService
}

// Refresh maneja POST /auth/refresh_token
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.Refresh(r.Context())
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	writeToken(w, out)
}

type ForgotController struct {
	service svc.ForgotService
}

// Forgot maneja POST /auth/forgot. El email se envía en segundo plano.
func (c *ForgotController) Forgot(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	if err := c.service.Forgot(r.Context(), req); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeToken(w http.ResponseWriter, out *dto.TokenResponse) {
	w.Header().Set("Authorization", "Bearer "+out.AccessToken)
	w.Header().Set("Access-Control-Expose-Headers", "Authorization")
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, out)
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, r, httperrors.ErrBadRequest.WithDetail("email e senha são obrigatórios"))
	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, r, httperrors.ErrInvalidCredentials)
	case errors.Is(err, svc.ErrTokenIssueFailed):
		httperrors.WriteError(w, r, httperrors.ErrInternalServerError.WithCause(err))
	default:
		helpers.WriteServiceError(w, r, err)
	}
}
