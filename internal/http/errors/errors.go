// Package errors define los errores HTTP del API y cómo se serializan.
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// errorResponse es el body de error: code/message/detail más los campos
// que los clientes del API esperan (status, path, timestamp).
type errorResponse struct {
	Timestamp int64        `json:"timestamp"`
	Status    int          `json:"status"`
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Detail    string       `json:"detail,omitempty"`
	Fields    []FieldError `json:"errors,omitempty"`
	Path      string       `json:"path,omitempty"`
}

// WriteError escribe una respuesta HTTP basada en el error proporcionado.
// Maneja automáticamente errores de tipo *AppError y errores genéricos.
// La causa (Err) nunca se expone.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := FromError(err)

	resp := errorResponse{
		Timestamp: time.Now().UnixMilli(),
		Status:    appErr.HTTPStatus,
		Code:      appErr.Code,
		Message:   appErr.Message,
		Detail:    appErr.Detail,
		Fields:    appErr.Fields,
	}
	if r != nil {
		resp.Path = r.URL.Path
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}
