package common

import (
	"context"
	"math"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

const (
	DefaultLinesPerPage = 12
	MaxLinesPerPage     = 100
	DefaultOrderBy      = "nome"
)

// PageParams son los parámetros de paginado tal como llegan del query string.
type PageParams struct {
	Page         int
	LinesPerPage int
	OrderBy      string // vacío = orden por defecto del recurso
	Direction    string
}

// DefaultPageParams retorna page=0, linesPerPage=12, direction=ASC.
func DefaultPageParams() PageParams {
	return PageParams{LinesPerPage: DefaultLinesPerPage, Direction: string(repository.Asc)}
}

// Request valida los parámetros y arma el PageRequest del store.
// El orderBy no se valida aquí: la whitelist vive en el store.
func (p PageParams) Request(defaultOrder string) (repository.PageRequest, error) {
	verr := &ValidationError{}

	size := p.LinesPerPage
	if p.Page < 0 {
		verr.Add("page", "Deve ser maior ou igual a 0")
	}
	if size < 1 || size > MaxLinesPerPage {
		verr.Add("linesPerPage", "Deve estar entre 1 e 100")
	} else if p.Page > math.MaxInt/size {
		// page*linesPerPage tiene que entrar en un int
		verr.Add("page", "Valor muito grande")
	}

	dir := repository.Direction(p.Direction)
	if p.Direction == "" {
		dir = repository.Asc
	}
	if dir != repository.Asc && dir != repository.Desc {
		verr.Add("direction", "Deve ser ASC ou DESC")
	}

	orderBy := p.OrderBy
	if orderBy == "" {
		orderBy = defaultOrder
	}

	if err := verr.OrNil(); err != nil {
		return repository.PageRequest{}, err
	}
	return repository.PageRequest{Page: p.Page, Size: size, OrderBy: orderBy, Direction: dir}, nil
}

// FindPage valida, consulta el store, traduce fallas y mapea cada fila a su DTO.
// El orden y el total los define el store; aquí no se reordena nada.
func FindPage[E, D any](
	ctx context.Context,
	params PageParams,
	defaultOrder string,
	fetch func(context.Context, repository.PageRequest) (repository.Page[E], error),
	toDTO func(E) D,
) (repository.Page[D], error) {
	req, err := params.Request(defaultOrder)
	if err != nil {
		return repository.Page[D]{}, err
	}

	page, err := fetch(ctx, req)
	if err != nil {
		return repository.Page[D]{}, Translate(err)
	}

	logger.From(ctx).Debug("page fetched",
		logger.Page(req.Page, req.Size, req.OrderBy, string(req.Direction)),
		logger.Count(len(page.Content)),
	)
	return repository.MapPage(page, toDTO), nil
}
