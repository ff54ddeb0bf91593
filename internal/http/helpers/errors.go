package helpers

import (
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/cursomvc/internal/http/errors"
	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
)

// ToAppError traduce la taxonomía de los services a errores HTTP:
// Validation 400, AccessDenied 403, NotFound 404, Integrity 409 y el resto 500.
func ToAppError(err error) *httperrors.AppError {
	var appErr *httperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		fields := make([]httperrors.FieldError, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			fields = append(fields, httperrors.FieldError{FieldName: v.Field, Message: v.Message})
		}
		return httperrors.ErrValidation.WithFields(fields...)
	}

	switch {
	case errors.Is(err, common.ErrAccessDenied):
		return httperrors.ErrForbidden
	case errors.Is(err, common.ErrNotFound):
		return httperrors.ErrNotFound.WithDetail(err.Error())
	case errors.Is(err, common.ErrIntegrity):
		return httperrors.ErrDataIntegrity.WithDetail(err.Error())
	}
	return httperrors.ErrInternalServerError.WithCause(err)
}

// WriteServiceError escribe el error de un service como respuesta HTTP.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	httperrors.WriteError(w, r, ToAppError(err))
}
