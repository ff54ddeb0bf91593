// Package clients contiene el controller de /clientes.
package clients

import (
	"net/http"

	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/clients"
	dtocommon "github.com/dropDatabas3/cursomvc/internal/http/dto/common"
	"github.com/dropDatabas3/cursomvc/internal/http/helpers"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/clients"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

// ClientController maneja /clientes. La autorización vive en el service.
type ClientController struct {
	service svc.ClientService
}

func NewClientController(service svc.ClientService) *ClientController {
	return &ClientController{service: service}
}

// List maneja GET /clientes
func (c *ClientController) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Page maneja GET /clientes/page
func (c *ClientController) Page(w http.ResponseWriter, r *http.Request) {
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

// Get maneja GET /clientes/{id}
func (c *ClientController) Get(w http.ResponseWriter, r *http.Request) {
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

// GetByEmail maneja GET /clientes/email?value=
func (c *ClientController) GetByEmail(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetByEmail(r.Context(), r.URL.Query().Get("value"))
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Create maneja POST /clientes (registro público)
func (c *ClientController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientNewDTO
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		logger.From(r.Context()).Debug("invalid JSON", logger.Err(err))
		helpers.WriteServiceError(w, r, err)
		return
	}
	id, err := c.service.Create(r.Context(), req)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", helpers.ResourceLocation(r, id))
	w.WriteHeader(http.StatusCreated)
}

// Update maneja PUT /clientes/{id}
func (c *ClientController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r)
	if err != nil {
		helpers.WriteServiceError(w, r, err)
		return
	}
	var req dto.ClientDTO
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

// Delete maneja DELETE /clientes/{id}
func (c *ClientController) Delete(w http.ResponseWriter, r *http.Request) {
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
