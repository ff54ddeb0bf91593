package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	svc "github.com/dropDatabas3/cursomvc/internal/http/services/health"
	"github.com/dropDatabas3/cursomvc/internal/store/adapters/memory"
)

type downStore struct{}

func (downStore) Name() string               { return "postgres" }
func (downStore) Ping(context.Context) error { return errors.New("timeout") }

func TestReadyz(t *testing.T) {
	tests := []struct {
		name   string
		store  svc.Pinger
		status int
		body   string
	}{
		{"ready", memory.New(), http.StatusOK, `"status":"ready"`},
		{"store down", downStore{}, http.StatusServiceUnavailable, `"status":"unavailable"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewControllers(svc.NewServices(svc.Deps{Store: tc.store, Version: "1.0.0"}))
			rr := httptest.NewRecorder()
			c.Health.Readyz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.body)
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		})
	}
}
