package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/cursomvc/internal/http/errors"
)

// MaxBodyBytes limita el tamaño de los bodies JSON.
const MaxBodyBytes = 1 << 20

// ReadJSON decodifica el body en dst. Un body mayor a MaxBodyBytes es 413;
// cualquier otro problema de sintaxis es ErrInvalidJSON.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return httperrors.ErrBodyTooLarge
		}
		return httperrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}

// WriteJSON escribe v con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
