// Package products contiene el service de búsqueda de productos.
package products

import (
	"context"
	"time"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/catalog"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
)

// ProductService expone el catálogo en sólo lectura.
type ProductService interface {
	Get(ctx context.Context, id int64) (*dto.ProductDTO, error)
	// Search retorna productos distintos cuyo nombre contiene req.Name
	// y que pertenecen a alguna de req.CategoryIDs.
	Search(ctx context.Context, req dto.ProductSearchRequest, params common.PageParams) (repository.Page[dto.ProductDTO], error)
}

type Deps struct {
	Products  repository.ProductRepository
	OpTimeout time.Duration
}

type productService struct {
	repo    repository.ProductRepository
	timeout time.Duration
}

func NewProductService(d Deps) ProductService {
	return &productService{repo: d.Products, timeout: d.OpTimeout}
}

func (s *productService) Get(ctx context.Context, id int64) (*dto.ProductDTO, error) {
	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.repo.FindByID(sctx, id)
	if err != nil {
		err = common.Translate(err)
		common.LogFailure(ctx, "products.get", err)
		return nil, err
	}
	out := toDTO(*p)
	return &out, nil
}

func (s *productService) Search(ctx context.Context, req dto.ProductSearchRequest, params common.PageParams) (repository.Page[dto.ProductDTO], error) {
	sctx, cancel := common.WithTimeout(ctx, s.timeout)
	defer cancel()

	filter := repository.ProductSearch{Name: req.Name, CategoryIDs: req.CategoryIDs}
	fetch := func(ctx context.Context, pr repository.PageRequest) (repository.Page[repository.Product], error) {
		return s.repo.Search(ctx, filter, pr)
	}

	page, err := common.FindPage(sctx, params, common.DefaultOrderBy, fetch, toDTO)
	if err != nil {
		common.LogFailure(ctx, "products.search", err)
	}
	return page, err
}

func toDTO(p repository.Product) dto.ProductDTO {
	return dto.ProductDTO{ID: p.ID, Name: p.Name, Price: p.Price}
}
