package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/email"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/auth"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
)

const generatedPasswordLen = 10

type ForgotDeps struct {
	Clients   repository.ClientRepository
	Hasher    password.Hasher
	Mail      email.Dispatcher
	OpTimeout time.Duration

	// Generate es inyectable para tests; default password.Generate.
	Generate func(n int) (string, error)
}

type forgotService struct {
	deps ForgotDeps
}

func NewForgotService(deps ForgotDeps) ForgotService {
	if deps.Generate == nil {
		deps.Generate = password.Generate
	}
	return &forgotService{deps: deps}
}

// Forgot reemplaza la credencial por una aleatoria y dispara el email sin esperarlo.
// Un email desconocido es NotFound.
func (s *forgotService) Forgot(ctx context.Context, in dto.ForgotRequest) error {
	log := logger.FromWithFields(ctx, logger.Component("auth.forgot"))

	addr := strings.TrimSpace(in.Email)
	if addr == "" {
		return common.Invalid("email", "Preenchimento obrigatório")
	}

	sctx, cancel := common.WithTimeout(ctx, s.deps.OpTimeout)
	defer cancel()

	client, err := s.deps.Clients.FindByEmail(sctx, addr)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "auth.forgot", err)
		return err
	}

	plain, err := s.deps.Generate(generatedPasswordLen)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hash, err := s.deps.Hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.deps.Clients.UpdatePasswordHash(sctx, client.ID, hash); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "auth.forgot", err)
		return err
	}

	s.deps.Mail.SendNewPassword(ctx, email.NewPasswordVars{Name: client.Name, Email: client.Email, Password: plain})
	log.Info("password reset", logger.PrincipalID(client.ID))
	return nil
}
