// Package products contiene el controller de /produtos.
package products

import (
	"net/http"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/catalog"
	dtocommon "github.com/dropDatabas3/cursomvc/internal/http/dto/common"
	"github.com/dropDatabas3/cursomvc/internal/http/helpers"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/products"
)

type ProductController struct {
	service svc.ProductService
}

func NewProductController(service svc.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Search maneja GET /produtos?nome=&categorias=1,2&page=...
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := helpers.DecodeIntList("categorias", q.Get("categorias"))
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	params, err := helpers.PageParams(r)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}

	req := dto.ProductSearchRequest{Name: helpers.DecodeParam(q.Get("nome")), CategoryIDs: ids}
	page, err := c.service.Search(r.Context(), req, params)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dtocommon.FromPage(page))
}

// Get maneja GET /produtos/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	out, err := c.service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}
