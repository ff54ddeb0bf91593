package helpers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/dropDatabas3/cursomvc/internal/http/errors"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
)

func TestDecodeIntList(t *testing.T) {
	ids, err := DecodeIntList("categorias", "1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = DecodeIntList("categorias", "")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = DecodeIntList("categorias", "1,x")
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "categorias", ve.Violations[0].Field)
}

func TestDecodeParam(t *testing.T) {
	assert.Equal(t, "tv led", DecodeParam("tv%20led"))
	assert.Equal(t, "tv led", DecodeParam("tv+led"))
	assert.Equal(t, "100%", DecodeParam("100%"))
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/categorias/page", nil)
	p, err := PageParams(r)
	require.NoError(t, err)
	assert.Equal(t, common.DefaultPageParams(), p)

	r = httptest.NewRequest(http.MethodGet, "/categorias/page?page=2&linesPerPage=5&orderBy=id&direction=DESC", nil)
	p, err = PageParams(r)
	require.NoError(t, err)
	assert.Equal(t, common.PageParams{Page: 2, LinesPerPage: 5, OrderBy: "id", Direction: "DESC"}, p)

	r = httptest.NewRequest(http.MethodGet, "/categorias/page?page=abc", nil)
	_, err = PageParams(r)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestPathID(t *testing.T) {
	withID := func(v string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/x/"+v, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", v)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := PathID(withID("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"abc", "0", "-3"} {
		_, err := PathID(withID(bad))
		assert.ErrorIs(t, err, common.ErrValidation, bad)
	}
}

func TestResourceLocation(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "http://api.local/categorias/", nil)
	assert.Equal(t, "http://api.local/categorias/7", ResourceLocation(r, 7))

	r.Header.Set("X-Forwarded-Proto", "HTTPS")
	assert.Equal(t, "https://api.local/categorias/7", ResourceLocation(r, 7))

	for _, bogus := range []string{"javascript", "ftp", "https://evil.example/x?"} {
		r.Header.Set("X-Forwarded-Proto", bogus)
		assert.Equal(t, "http://api.local/categorias/7", ResourceLocation(r, 7), bogus)
	}
}

func TestToAppError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{common.Invalid("nome", "obrigatório"), http.StatusBadRequest},
		{common.ErrAccessDenied, http.StatusForbidden},
		{&common.NotFoundError{Entity: "client", ID: 3}, http.StatusNotFound},
		{&common.IntegrityError{Reason: "tem pedidos"}, http.StatusConflict},
		{httperrors.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("pool closed"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, ToAppError(c.err).HTTPStatus, c.err.Error())
	}

	ae := ToAppError(common.Invalid("nome", "obrigatório"))
	require.Len(t, ae.Fields, 1)
	assert.Equal(t, "nome", ae.Fields[0].FieldName)
}

func TestReadJSON(t *testing.T) {
	var dst struct{ Nome string }
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nome":"x"}`))
	require.NoError(t, ReadJSON(rr, r, &dst))
	assert.Equal(t, "x", dst.Nome)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	err := ReadJSON(rr, r, &dst)
	assert.Equal(t, http.StatusBadRequest, ToAppError(err).HTTPStatus)

	big := `{"nome":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	err = ReadJSON(rr, r, &dst)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ToAppError(err).HTTPStatus)
}
