package common

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

func TestTranslate(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Translate(nil))
	})

	t.Run("not found keeps id and entity", func(t *testing.T) {
		err := Translate(repository.NotFound(repository.EntityClient, 7))
		require.ErrorIs(t, err, ErrNotFound)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, int64(7), nf.ID)
		assert.Contains(t, err.Error(), "Cliente")
	})

	t.Run("integrity", func(t *testing.T) {
		err := Translate(repository.Fail(repository.FailureIntegrity, repository.EntityCategory, 3, nil))
		require.ErrorIs(t, err, ErrIntegrity)
		assert.Contains(t, err.Error(), "produtos")
	})

	t.Run("email conflict is validation", func(t *testing.T) {
		err := Translate(&repository.StoreError{Kind: repository.FailureConflict, Entity: repository.EntityClient, Field: "email"})
		require.ErrorIs(t, err, ErrValidation)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "email", ve.Violations[0].Field)
	})

	t.Run("invalid sort", func(t *testing.T) {
		err := Translate(&repository.StoreError{Kind: repository.FailureInvalidSort, Entity: repository.EntityProduct, Field: "senha"})
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "senha")
	})

	t.Run("invalid reference maps column", func(t *testing.T) {
		err := Translate(&repository.StoreError{Kind: repository.FailureInvalidReference, Entity: repository.EntityAddress, ID: 99, Field: "city_id"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "cidadeId", ve.Violations[0].Field)
	})

	t.Run("unknown passes through", func(t *testing.T) {
		cause := errors.New("boom")
		err := Translate(repository.Fail(repository.FailureUnknown, repository.EntityClient, 0, cause))
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("foreign error passes through", func(t *testing.T) {
		cause := context.DeadlineExceeded
		assert.Equal(t, cause, Translate(cause))
	})
}

func TestPageParams_Request(t *testing.T) {
	req, err := DefaultPageParams().Request(DefaultOrderBy)
	require.NoError(t, err)
	assert.Equal(t, repository.PageRequest{Page: 0, Size: 12, OrderBy: "nome", Direction: repository.Asc}, req)

	cases := map[string]PageParams{
		"negative page":     {Page: -1, LinesPerPage: 12, Direction: "ASC"},
		"zero lines":        {LinesPerPage: 0, Direction: "ASC"},
		"too many lines":    {LinesPerPage: 101, Direction: "ASC"},
		"lowercase dir":     {LinesPerPage: 12, Direction: "asc"},
		"garbage direction": {LinesPerPage: 12, Direction: "UP"},
		"offset overflow":   {Page: 768614336404564651, LinesPerPage: 12, Direction: "ASC"},
		"max int page":      {Page: math.MaxInt, LinesPerPage: 2, Direction: "ASC"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.Request(DefaultOrderBy)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	req, err = PageParams{Page: 2, LinesPerPage: 100, OrderBy: "preco", Direction: "DESC"}.Request(DefaultOrderBy)
	require.NoError(t, err)
	assert.Equal(t, 200, req.Offset())
	assert.Equal(t, repository.Desc, req.Direction)
	assert.Equal(t, "preco", req.OrderBy)

	// la última página representable sigue siendo válida
	last := math.MaxInt / 12
	req, err = PageParams{Page: last, LinesPerPage: 12, Direction: "ASC"}.Request(DefaultOrderBy)
	require.NoError(t, err)
	assert.Equal(t, last*12, req.Offset())
}

func TestPageRequest_OffsetSaturates(t *testing.T) {
	assert.Equal(t, 0, repository.PageRequest{Page: -3, Size: 12}.Offset())
	assert.Equal(t, math.MaxInt, repository.PageRequest{Page: 768614336404564651, Size: 12}.Offset())
}

func TestFindPage_MapsAndTranslates(t *testing.T) {
	ctx := context.Background()
	fetch := func(_ context.Context, req repository.PageRequest) (repository.Page[repository.Category], error) {
		return repository.Page[repository.Category]{
			Content:       []repository.Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
			TotalElements: 14,
			Number:        req.Page,
			Size:          req.Size,
		}, nil
	}
	page, err := FindPage(ctx, DefaultPageParams(), DefaultOrderBy, fetch, func(c repository.Category) string { return c.Name })
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, page.Content)
	assert.Equal(t, 2, page.TotalPages())

	failing := func(context.Context, repository.PageRequest) (repository.Page[repository.Category], error) {
		return repository.Page[repository.Category]{}, &repository.StoreError{Kind: repository.FailureInvalidSort, Entity: repository.EntityCategory, Field: "x"}
	}
	_, err = FindPage(ctx, DefaultPageParams(), DefaultOrderBy, failing, func(c repository.Category) string { return c.Name })
	assert.ErrorIs(t, err, ErrValidation)

	called := false
	spy := func(context.Context, repository.PageRequest) (repository.Page[repository.Category], error) {
		called = true
		return repository.Page[repository.Category]{}, nil
	}
	_, err = FindPage(ctx, PageParams{LinesPerPage: 0, Direction: "ASC"}, DefaultOrderBy, spy, func(c repository.Category) string { return c.Name })
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called, "invalid params must not reach the store")
}

func TestLogFailure_RecordsStoreFailureKind(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core))

	LogFailure(ctx, "categories.delete", Translate(repository.Fail(repository.FailureIntegrity, repository.EntityCategory, 3, nil)))
	LogFailure(ctx, "clients.get", Translate(repository.Fail(repository.FailureUnknown, repository.EntityClient, 0, errors.New("conn reset"))))
	LogFailure(ctx, "clients.create", Invalid("nome", "obrigatório"))

	entries := logs.All()
	require.Len(t, entries, 3)

	rejected := entries[0]
	assert.Equal(t, zapcore.WarnLevel, rejected.Level)
	assert.Equal(t, "integrity", rejected.ContextMap()["failure_kind"])
	assert.Equal(t, repository.EntityCategory, rejected.ContextMap()["entity"])
	assert.Equal(t, "categories.delete", rejected.ContextMap()["op"])

	fatal := entries[1]
	assert.Equal(t, zapcore.ErrorLevel, fatal.Level)
	assert.Equal(t, "unknown", fatal.ContextMap()["failure_kind"])

	// validación propia del service: no viene del store
	assert.NotContains(t, entries[2].ContextMap(), "failure_kind")
}
