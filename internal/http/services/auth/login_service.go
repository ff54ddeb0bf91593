package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/auth"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
)

// Errores de login
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenIssueFailed   = errors.New("failed to issue token")
)

// LoginDeps contiene las dependencias para el login service.
type LoginDeps struct {
	Clients   repository.ClientRepository
	Hasher    password.Hasher
	Issuer    *jwtx.Issuer
	OpTimeout time.Duration
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) LoginPassword(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	log := logger.FromWithFields(ctx,
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("LoginPassword"),
	)

	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	sctx, cancel := common.WithTimeout(ctx, s.deps.OpTimeout)
	defer cancel()

	client, err := s.deps.Clients.FindByEmail(sctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("client not found")
			return nil, ErrInvalidCredentials
		}
		log.Error("client lookup failed", logger.Err(err))
		return nil, common.Translate(err)
	}

	log = log.With(logger.PrincipalID(client.ID))

	if client.PasswordHash == "" || !s.deps.Hasher.Verify(in.Password, client.PasswordHash) {
		log.Debug("password check failed")
		return nil, ErrInvalidCredentials
	}

	p := &authz.Principal{ID: client.ID, Email: client.Email, Roles: client.Roles}
	resp, err := issue(s.deps.Issuer, p)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	log.Info("login ok", logger.Roles(p.RoleNames()))
	return resp, nil
}

func issue(issuer *jwtx.Issuer, p *authz.Principal) (*dto.TokenResponse, error) {
	token, _, err := issuer.Sign(p)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(issuer.AccessTTL.Seconds()),
	}, nil
}
