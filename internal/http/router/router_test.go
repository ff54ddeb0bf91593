package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	"github.com/dropDatabas3/cursomvc/internal/email"
	"github.com/dropDatabas3/cursomvc/internal/http/services"
	jwtx "github.com/dropDatabas3/cursomvc/internal/jwt"
	"github.com/dropDatabas3/cursomvc/internal/metrics"
	"github.com/dropDatabas3/cursomvc/internal/rate"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	"github.com/dropDatabas3/cursomvc/internal/store/adapters/memory"
)

type noMail struct{}

func (noMail) SendNewPassword(context.Context, email.NewPasswordVars) {}

type env struct {
	h      http.Handler
	cityID int64
}

func newEnv(t *testing.T, loginLimit int) *env {
	t.Helper()
	ctx := context.Background()
	conn := memory.New()
	hasher := password.BCrypt{Cost: 4}

	st := &repository.State{Name: "São Paulo"}
	require.NoError(t, conn.Cities().CreateState(ctx, st))
	city := &repository.City{Name: "Campinas", State: repository.State{ID: st.ID}}
	require.NoError(t, conn.Cities().CreateCity(ctx, city))

	hash, err := hasher.Hash("admin123")
	require.NoError(t, err)
	adm := &repository.Client{
		Name:         "Administrador",
		Email:        "admin@cursomvc.com",
		TaxID:        "11144477735",
		Type:         types.ClientTypeIndividual,
		PasswordHash: hash,
		Roles:        []types.Role{types.RoleClient, types.RoleAdmin},
	}
	adm.AddPhone("1133334444")
	adm.AddAddress(&repository.Address{Street: "Rua A", Number: "1", PostalCode: "13000000", City: repository.CityRef{ID: city.ID}})
	require.NoError(t, conn.Clients().Create(ctx, adm))

	iss, err := jwtx.NewIssuer("cursomvc", []byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))

	svcs := services.New(services.Deps{DAL: conn, Issuer: iss, Hasher: hasher, Mail: noMail{}, Version: "test"})
	d := Deps{Services: svcs, Tokens: iss, Metrics: metrics.Handler(reg)}
	if loginLimit > 0 {
		d.LoginLimiter = rate.NewMemoryLimiter("login:", loginLimit, time.Hour)
	}
	return &env{h: New(d), cityID: city.ID}
}

func (e *env) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)
	return rr
}

func (e *env) login(t *testing.T, mail, pass string) string {
	t.Helper()
	rr := e.do(http.MethodPost, "/login", "", `{"email":"`+mail+`","senha":"`+pass+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return strings.TrimPrefix(rr.Header().Get("Authorization"), "Bearer ")
}

func TestRouter_CategoriesRequireAdmin(t *testing.T) {
	e := newEnv(t, 0)

	rr := e.do(http.MethodPost, "/categorias", "", `{"nome":"Informática"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	admin := e.login(t, "admin@cursomvc.com", "admin123")
	rr = e.do(http.MethodPost, "/categorias", admin, `{"nome":"Informática"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.True(t, strings.HasSuffix(rr.Header().Get("Location"), "/categorias/1"))

	// lectura pública
	rr = e.do(http.MethodGet, "/categorias/1", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Informática")

	rr = e.do(http.MethodGet, "/categorias/page?direction=sideways", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_ClientOwnership(t *testing.T) {
	e := newEnv(t, 0)

	body := `{"nome":"Maria Silva","email":"maria@gmail.com","cpfOuCnpj":"52998224725","tipo":1,
		"senha":"123","logradouro":"Rua Flores","numero":"300","cep":"38220834",
		"telefone1":"27363323","cidadeId":` + jsonInt(e.cityID) + `}`
	rr := e.do(http.MethodPost, "/clientes", "", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	loc := rr.Header().Get("Location")
	ownPath := loc[strings.Index(loc, "/clientes/"):]

	maria := e.login(t, "maria@gmail.com", "123")

	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, ownPath, maria, "").Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/clientes/1", maria, "").Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/clientes", maria, "").Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/categorias", maria, `{"nome":"Escritório"}`).Code)

	admin := e.login(t, "admin@cursomvc.com", "admin123")
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, ownPath, admin, "").Code)

	// refresh conserva la identidad
	rr = e.do(http.MethodPost, "/auth/refresh_token", maria, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodPost, "/auth/refresh_token", "", "").Code)
}

func TestRouter_Fallbacks(t *testing.T) {
	e := newEnv(t, 0)

	rr := e.do(http.MethodGet, "/nada", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "/nada", body["path"])

	assert.Equal(t, http.StatusMethodNotAllowed, e.do(http.MethodPatch, "/categorias/1", "", "").Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/healthz", "", "").Code)

	rr = e.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")
}

func TestRouter_LoginRateLimit(t *testing.T) {
	e := newEnv(t, 1)

	rr := e.do(http.MethodPost, "/login", "", `{"email":"admin@cursomvc.com","senha":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(http.MethodPost, "/login", "", `{"email":"admin@cursomvc.com","senha":"admin123"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
