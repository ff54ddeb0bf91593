package auth

import (
	"context"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/auth"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
)

type RefreshDeps struct {
	Issuer     *jwtx.Issuer
	Principals authz.PrincipalSource
}

type refreshService struct {
	deps RefreshDeps
}

func NewRefreshService(deps RefreshDeps) RefreshService {
	if deps.Principals == nil {
		deps.Principals = authz.ContextSource{}
	}
	return &refreshService{deps: deps}
}

// Refresh no consulta el store: los roles viajan en el token vigente.
func (s *refreshService) Refresh(ctx context.Context) (*dto.TokenResponse, error) {
	p := s.deps.Principals.Current(ctx)
	if p == nil {
		return nil, common.ErrAccessDenied
	}
	resp, err := issue(s.deps.Issuer, p)
	if err != nil {
		logger.From(ctx).Error("token refresh failed", logger.PrincipalID(p.ID), logger.Err(err))
		return nil, ErrTokenIssueFailed
	}
	return resp, nil
}
