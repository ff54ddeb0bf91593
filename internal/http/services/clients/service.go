// Package clients contiene el service del recurso /clientes.
package clients

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/clients"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
)

// ClientService define las operaciones sobre clientes.
// Lecturas y escrituras de un cliente puntual exigen ADMIN o ser el dueño.
type ClientService interface {
	// List y Page son sólo para ADMIN.
	List(ctx context.Context) ([]dto.ClientDTO, error)
	Page(ctx context.Context, params common.PageParams) (repository.Page[dto.ClientDTO], error)
	Get(ctx context.Context, id int64) (*dto.ClientDetailDTO, error)
	GetByEmail(ctx context.Context, email string) (*dto.ClientDetailDTO, error)
	// Create es el registro público. Retorna el ID asignado.
	Create(ctx context.Context, in dto.ClientNewDTO) (int64, error)
	Update(ctx context.Context, id int64, in dto.ClientDTO) error
	Delete(ctx context.Context, id int64) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Clients    repository.ClientRepository
	Hasher     password.Hasher
	Principals authz.PrincipalSource
	OpTimeout  time.Duration // por llamada al store
}

type clientService struct {
	repo       repository.ClientRepository
	builder    Builder
	principals authz.PrincipalSource
	timeout    time.Duration
}

// NewClientService crea el service.
func NewClientService(d Deps) ClientService {
	principals := d.Principals
	if principals == nil {
		principals = authz.ContextSource{}
	}
	return &clientService{
		repo:       d.Clients,
		builder:    Builder{Hasher: d.Hasher},
		principals: principals,
		timeout:    d.OpTimeout,
	}
}

const componentClients = "clients.service"

func (s *clientService) requireAdmin(ctx context.Context) error {
	if !s.principals.Current(ctx).IsAdmin() {
		return common.ErrAccessDenied
	}
	return nil
}

func (s *clientService) authorize(ctx context.Context, ownerID int64) error {
	return authz.Authorize(s.principals.Current(ctx), ownerID)
}

func (s *clientService) List(ctx context.Context) ([]dto.ClientDTO, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	all, err := s.repo.FindAll(sctx)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.list", err)
		return nil, err
	}

	out := make([]dto.ClientDTO, 0, len(all))
	for _, c := range all {
		out = append(out, toDTO(c))
	}
	return out, nil
}

func (s *clientService) Page(ctx context.Context, params common.PageParams) (repository.Page[dto.ClientDTO], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return repository.Page[dto.ClientDTO]{}, err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := common.FindPage(sctx, params, common.DefaultOrderBy, s.repo.FindPage, toDTO)
	if err != nil {
		common.LogFailure(ctx, "clients.page", err)
	}
	return page, err
}

func (s *clientService) Get(ctx context.Context, id int64) (*dto.ClientDetailDTO, error) {
	// el guard va antes del store: un denegado no revela si el ID existe
	if err := s.authorize(ctx, id); err != nil {
		return nil, err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.repo.FindByID(sctx, id)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.get", err)
		return nil, err
	}
	out := toDetail(c)
	return &out, nil
}

func (s *clientService) GetByEmail(ctx context.Context, email string) (*dto.ClientDetailDTO, error) {
	p := s.principals.Current(ctx)
	if p == nil {
		return nil, common.ErrAccessDenied
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, common.Invalid("value", "Preenchimento obrigatório")
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.repo.FindByEmail(sctx, email)
	if err != nil {
		if repository.IsNotFound(err) && !p.IsAdmin() {
			return nil, common.ErrAccessDenied
		}
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.get_by_email", err)
		return nil, err
	}
	if err := authz.Authorize(p, c.ID); err != nil {
		return nil, err
	}
	out := toDetail(c)
	return &out, nil
}

func (s *clientService) Create(ctx context.Context, in dto.ClientNewDTO) (int64, error) {
	log := logger.FromWithFields(ctx, logger.Component(componentClients))

	if err := validateNew(in); err != nil {
		return 0, err
	}
	c, err := s.builder.BuildNew(in)
	if err != nil {
		return 0, err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Create(sctx, c); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.create", err)
		return 0, err
	}

	log.Info("client created", logger.EntityID(c.ID), logger.Count(len(c.Phones)))
	return c.ID, nil
}

func (s *clientService) Update(ctx context.Context, id int64, in dto.ClientDTO) error {
	if err := s.authorize(ctx, id); err != nil {
		return err
	}
	if err := validateUpdate(in); err != nil {
		return err
	}

	// el ID del path pisa cualquier ID del body
	in.ID = id
	patch := s.builder.BuildUpdate(in)

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.repo.FindByID(sctx, id)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.update", err)
		return err
	}
	current.Name = patch.Name
	current.Email = patch.Email

	if err := s.repo.Update(sctx, current); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.update", err)
		return err
	}

	logger.From(ctx).Info("client updated", logger.Component(componentClients), logger.EntityID(id))
	return nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	// el dueño de un cliente es su propio ID, inmutable: se autoriza con el ID del path
	// y el store borra en un único statement
	if err := s.authorize(ctx, id); err != nil {
		return err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Delete(sctx, id); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "clients.delete", err)
		return err
	}

	logger.From(ctx).Info("client deleted", logger.Component(componentClients), logger.EntityID(id))
	return nil
}

func toDTO(c repository.Client) dto.ClientDTO {
	return dto.ClientDTO{ID: c.ID, Name: c.Name, Email: c.Email}
}

func toDetail(c *repository.Client) dto.ClientDetailDTO {
	out := dto.ClientDetailDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		TaxID:     c.TaxID,
		Type:      c.Type.Label(),
		Phones:    append([]string{}, c.Phones...),
		Addresses: make([]dto.AddressDTO, 0, len(c.Addresses)),
		Roles:     make([]string, 0, len(c.Roles)),
	}
	for _, a := range c.Addresses {
		out.Addresses = append(out.Addresses, dto.AddressDTO{
			ID:         a.ID,
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			District:   a.District,
			PostalCode: a.PostalCode,
			City: dto.CityDTO{
				ID:    a.City.ID,
				Name:  a.City.Name,
				State: dto.StateDTO{Name: a.City.StateName},
			},
		})
	}
	for _, r := range c.Roles {
		out.Roles = append(out.Roles, r.String())
	}
	return out
}
