package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	dto "github.com/dropDatabas3/cursomvc/internal/http/dto/clients"
	svc "github.com/dropDatabas3/cursomvc/internal/http/services/clients"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	"github.com/dropDatabas3/cursomvc/internal/store/adapters/memory"
)

const newClientBody = `{
	"nome": "Maria Silva",
	"email": "maria@gmail.com",
	"cpfOuCnpj": "111.444.777-35",
	"tipo": 1,
	"senha": "123",
	"logradouro": "Rua Flores",
	"numero": "300",
	"complemento": "Apto 303",
	"bairro": "Jardim",
	"cep": "38220834",
	"telefone1": "27363323",
	"telefone2": "93838393",
	"cidadeId": %d
}`

// principalBox permite cambiar el principal entre requests del mismo router.
type principalBox struct{ p *authz.Principal }

func (b *principalBox) Current(context.Context) *authz.Principal { return b.p }

func setup(t *testing.T) (http.Handler, *principalBox, int64) {
	t.Helper()
	ctx := context.Background()
	conn := memory.New()
	st := &repository.State{Name: "Minas Gerais"}
	require.NoError(t, conn.Cities().CreateState(ctx, st))
	city := &repository.City{Name: "Uberlândia", State: repository.State{ID: st.ID}}
	require.NoError(t, conn.Cities().CreateCity(ctx, city))

	box := &principalBox{}
	c := NewClientController(svc.NewClientService(svc.Deps{
		Clients:    conn.Clients(),
		Hasher:     password.BCrypt{Cost: 4},
		Principals: box,
	}))

	r := chi.NewRouter()
	r.Get("/clientes", c.List)
	r.Get("/clientes/page", c.Page)
	r.Get("/clientes/email", c.GetByEmail)
	r.Post("/clientes", c.Create)
	r.Get("/clientes/{id}", c.Get)
	r.Put("/clientes/{id}", c.Update)
	r.Delete("/clientes/{id}", c.Delete)
	return r, box, city.ID
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func body(cityID int64) string {
	return fmt.Sprintf(newClientBody, cityID)
}

func TestClientController_CreateAndGet(t *testing.T) {
	h, box, cityID := setup(t)

	rr := do(h, http.MethodPost, "/clientes", body(cityID))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "http://example.com/clientes/1", rr.Header().Get("Location"))

	// anónimo
	rr = do(h, http.MethodGet, "/clientes/1", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	box.p = &authz.Principal{ID: 1, Roles: []types.Role{types.RoleClient}}
	rr = do(h, http.MethodGet, "/clientes/1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var got dto.ClientDetailDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Maria Silva", got.Name)
	assert.ElementsMatch(t, []string{"27363323", "93838393"}, got.Phones)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Uberlândia", got.Addresses[0].City.Name)
	assert.Equal(t, "Minas Gerais", got.Addresses[0].City.State.Name)
	assert.NotContains(t, rr.Body.String(), "senha")

	rr = do(h, http.MethodGet, "/clientes/email?value=maria@gmail.com", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	box.p = &authz.Principal{ID: 2, Roles: []types.Role{types.RoleClient}}
	rr = do(h, http.MethodGet, "/clientes/1", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestClientController_CreateValidation(t *testing.T) {
	h, _, cityID := setup(t)

	rr := do(h, http.MethodPost, "/clientes", body(999))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"fieldName":"cidadeId"`)

	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/clientes", body(cityID)).Code)

	// email duplicado
	rr = do(h, http.MethodPost, "/clientes", body(cityID))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Email já existente")

	rr = do(h, http.MethodPost, "/clientes", `{"nome":"Maria Silva","email":"x","tipo":3}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"fieldName":"tipo"`)
}

func TestClientController_UpdateDelete(t *testing.T) {
	h, box, cityID := setup(t)
	require.Equal(t, http.StatusCreated, do(h, http.MethodPost, "/clientes", body(cityID)).Code)
	box.p = &authz.Principal{ID: 1, Roles: []types.Role{types.RoleClient}}

	rr := do(h, http.MethodPut, "/clientes/1", `{"nome":"Maria Souza","email":"maria.souza@gmail.com"}`)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	rr = do(h, http.MethodGet, "/clientes/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "maria.souza@gmail.com")

	// listar es sólo de ADMIN
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodGet, "/clientes", "").Code)

	box.p = &authz.Principal{ID: 50, Roles: []types.Role{types.RoleAdmin}}
	rr = do(h, http.MethodGet, "/clientes/page?orderBy=email", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"totalElements":1`)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/clientes/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/clientes/1", "").Code)
}
