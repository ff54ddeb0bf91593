package products

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/catalog"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/products"
	"github.com/dropDatabas3/cursomvc/internal/store/adapters/memory"
)

func setup(t *testing.T) (http.Handler, int64, int64) {
	t.Helper()
	ctx := context.Background()
	conn := memory.New()
	info := &repository.Category{Name: "Informática"}
	office := &repository.Category{Name: "Escritório"}
	require.NoError(t, conn.Categories().Create(ctx, info))
	require.NoError(t, conn.Categories().Create(ctx, office))
	for _, p := range []*repository.Product{
		{Name: "Computador", Price: 2000, CategoryIDs: []int64{info.ID}},
		{Name: "Impressora", Price: 800, CategoryIDs: []int64{info.ID, office.ID}},
		{Name: "Mouse", Price: 80, CategoryIDs: []int64{info.ID}},
	} {
		require.NoError(t, conn.Products().Create(ctx, p))
	}

	c := NewProductController(svc.NewProductService(svc.Deps{Products: conn.Products()}))
	r := chi.NewRouter()
	r.Get("/produtos", c.Search)
	r.Get("/produtos/{id}", c.Get)
	return r, info.ID, office.ID
}

type page struct {
	Content       []dto.ProductDTO `json:"content"`
	TotalElements int64            `json:"totalElements"`
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, page) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var p page
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	}
	return rr, p
}

func TestProductController_Search(t *testing.T) {
	h, info, office := setup(t)
	ids := strconv.FormatInt(info, 10) + "," + strconv.FormatInt(office, 10)

	rr, p := get(t, h, "/produtos?categorias="+ids)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(3), p.TotalElements)

	// el front manda nome codificado dos veces
	rr, p = get(t, h, "/produtos?nome=pres%2573ora&categorias="+strconv.FormatInt(office, 10))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, p.Content, 1)
	assert.Equal(t, "Impressora", p.Content[0].Name)

	rr, p = get(t, h, "/produtos?nome=mou&categorias="+strconv.FormatInt(info, 10))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, p.Content, 1)
	assert.Equal(t, "Mouse", p.Content[0].Name)

	rr, _ = get(t, h, "/produtos?categorias=1,x")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"fieldName":"categorias"`)

	rr, _ = get(t, h, "/produtos?orderBy=senha")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProductController_Get(t *testing.T) {
	h, _, _ := setup(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/produtos/2", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var p dto.ProductDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, dto.ProductDTO{ID: 2, Name: "Impressora", Price: 800}, p)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/produtos/42", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
