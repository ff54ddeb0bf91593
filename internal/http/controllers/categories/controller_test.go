package categories

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/catalog"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/categories"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/store/adapters/memory"
)

var admin = &authz.Principal{ID: 1, Roles: []types.Role{types.RoleAdmin}}

func router(p *authz.Principal) http.Handler {
	conn := memory.New()
	c := NewCategoryController(svc.NewCategoryService(svc.Deps{
		Categories: conn.Categories(),
		Principals: authz.Static{P: p},
	}))

	r := chi.NewRouter()
	r.Get("/categorias", c.List)
	r.Get("/categorias/page", c.Page)
	r.Post("/categorias", c.Create)
	r.Get("/categorias/{id}", c.Get)
	r.Put("/categorias/{id}", c.Update)
	r.Delete("/categorias/{id}", c.Delete)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCategoryController_CRUD(t *testing.T) {
	h := router(admin)

	rr := do(h, http.MethodPost, "/categorias", `{"nome":"Informática"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "http://example.com/categorias/1", rr.Header().Get("Location"))

	rr = do(h, http.MethodGet, "/categorias/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.CategoryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, dto.CategoryDTO{ID: 1, Name: "Informática"}, got)

	rr = do(h, http.MethodPut, "/categorias/1", `{"id":99,"nome":"Escritório"}`)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(h, http.MethodGet, "/categorias", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []dto.CategoryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Escritório", list[0].Name)

	rr = do(h, http.MethodDelete, "/categorias/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(h, http.MethodGet, "/categorias/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Objeto não encontrado! Id: 1, Tipo: Categoria")
}

func TestCategoryController_Errors(t *testing.T) {
	h := router(admin)

	rr := do(h, http.MethodGet, "/categorias/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(h, http.MethodPost, "/categorias", `{"nome":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"fieldName":"nome"`)

	rr = do(h, http.MethodPost, "/categorias", `{"nome":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(h, http.MethodGet, "/categorias/page?linesPerPage=x", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(router(&authz.Principal{ID: 2, Roles: []types.Role{types.RoleClient}}), http.MethodPost, "/categorias", `{"nome":"Informática"}`)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCategoryController_Page(t *testing.T) {
	h := router(admin)
	for _, n := range []string{"Informática", "Escritório", "Cama mesa e banho"} {
		require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/categorias", `{"nome":"`+n+`"}`).Code)
	}

	rr := do(h, http.MethodGet, "/categorias/page?linesPerPage=2&orderBy=nome", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var page struct {
		Content       []dto.CategoryDTO `json:"content"`
		TotalElements int64             `json:"totalElements"`
		TotalPages    int               `json:"totalPages"`
		First         bool              `json:"first"`
		Last          bool              `json:"last"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Cama mesa e banho", page.Content[0].Name)
}
