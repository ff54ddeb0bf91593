// Package categories contiene el controller de /categorias.
package categories

import (
	"net/http"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/catalog"
	dtocommon "github.com/dropDatabas3/cursomvc/internal/http/dto/common"
	"github.com/dropDatabas3/cursomvc/internal/http/helpers"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/categories"
)

// CategoryController maneja el CRUD de categorías.
type CategoryController struct {
	service svc.CategoryService
}

func NewCategoryController(service svc.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

// List maneja GET /categorias
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Page maneja GET /categorias/page
func (c *CategoryController) Page(w http.ResponseWriter, r *http.Request) {
	params, err := helpers.PageParams(r)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	page, err := c.service.Page(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dtocommon.FromPage(page))
}

// Get maneja GET /categorias/{id}
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
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

// Create maneja POST /categorias
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryDTO
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	out, err := c.service.Create(r.Context(), req)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", helpers.ResourceLocation(r, out.ID))
	w.WriteHeader(http.StatusCreated)
}

// Update maneja PUT /categorias/{id}
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	var req dto.CategoryDTO
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	if err := c.service.Update(r.Context(), id, req); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete maneja DELETE /categorias/{id}
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
