package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clientes", nil)

	WriteError(rec, req, ErrValidation.WithFields(FieldError{FieldName: "email", Message: "Email inválido"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "/clientes", body["path"])
	assert.EqualValues(t, 400, body["status"])
	fields := body["errors"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].(map[string]any)["fieldName"])
}

func TestWriteError_GenericHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, stderrors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestCopiesDoNotMutateBase(t *testing.T) {
	_ = ErrNotFound.WithDetail("x").WithCause(stderrors.New("y"))
	_ = ErrValidation.WithFields(FieldError{FieldName: "a"})

	assert.Empty(t, ErrNotFound.Detail)
	assert.Nil(t, ErrNotFound.Err)
	assert.Empty(t, ErrValidation.Fields)
}
