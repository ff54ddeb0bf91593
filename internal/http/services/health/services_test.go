package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dropDatabas3/cursomvc/internal/store/adapters/memory"
)

type downStore struct{}

func (downStore) Name() string               { return "postgres" }
func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestCheck(t *testing.T) {
	resp, ok := NewHealthService(Deps{Store: memory.New(), Version: "test"}).Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Components["store:memory"].Status)

	resp, ok = NewHealthService(Deps{Store: downStore{}}).Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "connection refused", resp.Components["store:postgres"].Message)

	_, ok = NewHealthService(Deps{}).Check(context.Background())
	assert.False(t, ok)
}
