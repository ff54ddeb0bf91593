// Package categories contiene el service del recurso /categorias.
package categories

import (
	"context"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/catalog"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/validation"
)

// CategoryService define las operaciones sobre categorías.
// Las lecturas son públicas; las escrituras exigen ADMIN.
type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryDTO, error)
	Page(ctx context.Context, params common.PageParams) (repository.Page[dto.CategoryDTO], error)
	Get(ctx context.Context, id int64) (*dto.CategoryDTO, error)
	Create(ctx context.Context, in dto.CategoryDTO) (*dto.CategoryDTO, error)
	Update(ctx context.Context, id int64, in dto.CategoryDTO) error
	Delete(ctx context.Context, id int64) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Categories repository.CategoryRepository
	Principals authz.PrincipalSource
	OpTimeout  time.Duration
}

type categoryService struct {
	repo       repository.CategoryRepository
	principals authz.PrincipalSource
	timeout    time.Duration
}

// NewCategoryService crea el service.
func NewCategoryService(d Deps) CategoryService {
	principals := d.Principals
	if principals == nil {
		principals = authz.ContextSource{}
	}
	return &categoryService{repo: d.Categories, principals: principals, timeout: d.OpTimeout}
}

func (s *categoryService) requireAdmin(ctx context.Context) error {
	if !s.principals.Current(ctx).IsAdmin() {
		return common.ErrAccessDenied
	}
	return nil
}

func validate(in dto.CategoryDTO) error {
	switch {
	case validation.Blank(in.Name):
		return common.Invalid("nome", "Preenchimento obrigatório")
	case !validation.LengthBetween(in.Name, 5, 80):
		return common.Invalid("nome", "O tamanho deve ser entre 5 e 80 caracteres")
	}
	return nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryDTO, error) {
	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	all, err := s.repo.FindAll(sctx)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "categories.list", err)
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(all))
	for _, c := range all {
		out = append(out, toDTO(c))
	}
	return out, nil
}

func (s *categoryService) Page(ctx context.Context, params common.PageParams) (repository.Page[dto.CategoryDTO], error) {
	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := common.FindPage(sctx, params, common.DefaultOrderBy, s.repo.FindPage, toDTO)
	if err != nil {
		common.LogFailure(ctx, "categories.page", err)
	}
	return page, err
}

func (s *categoryService) Get(ctx context.Context, id int64) (*dto.CategoryDTO, error) {
	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	c, err := s.repo.FindByID(sctx, id)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "categories.get", err)
		return nil, err
	}
	out := toDTO(*c)
	return &out, nil
}

func (s *categoryService) Create(ctx context.Context, in dto.CategoryDTO) (*dto.CategoryDTO, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	// el ID del body se descarta
	c := &repository.Category{Name: in.Name}
	if err := s.repo.Create(sctx, c); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "categories.create", err)
		return nil, err
	}

	logger.From(ctx).Info("category created", logger.EntityKind(repository.EntityCategory), logger.EntityID(c.ID))
	out := toDTO(*c)
	return &out, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, in dto.CategoryDTO) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := validate(in); err != nil {
		return err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	current, err := s.repo.FindByID(sctx, id)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "categories.update", err)
		return err
	}
	current.Name = in.Name

	if err := s.repo.Update(sctx, current); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "categories.update", err)
		return err
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Delete(sctx, id); err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "categories.delete", err)
		return err
	}

	logger.From(ctx).Info("category deleted", logger.EntityKind(repository.EntityCategory), logger.EntityID(id))
	return nil
}

func toDTO(c repository.Category) dto.CategoryDTO {
	return dto.CategoryDTO{ID: c.ID, Name: c.Name}
}
