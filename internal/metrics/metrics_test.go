package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestWithMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	r := chi.NewRouter()
	r.Use(WithMetrics)
	r.Get("/clientes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"7", "8"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clientes/"+id, nil))
	}

	body := scrape(t, reg)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/clientes/{id}",status="404"} 2`)
	assert.NotContains(t, body, `path="/clientes/7"`)
}

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))

	RecordStoreFailure("client", "integrity")
	RecordRateLimited("login")

	body := scrape(t, reg)
	assert.Contains(t, body, `store_failures_total{entity="client",kind="integrity"}`)
	assert.Contains(t, body, `rate_limited_total{endpoint="login"}`)
}

type fakePool struct{}

func (fakePool) PoolStats() (int32, int32, int32) { return 2, 3, 5 }

func TestRegisterPool(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterPool(reg, fakePool{}))

	assert.Contains(t, scrape(t, reg), "db_pool_total 5")
}
