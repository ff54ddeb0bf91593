// Package helpers contiene utilidades compartidas por los controllers:
// decodificación de URL, parámetros de paginado, JSON y mapeo de errores.
package helpers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/cursomvc/internal/http/services/common"
)

// DecodeParam decodifica un valor de query string. Si no es decodificable
// retorna el valor original.
func DecodeParam(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// DecodeIntList convierte "1,2,3" en []int64{1,2,3}. Vacío retorna nil.
// Cualquier elemento no numérico es un ValidationError sobre field.
func DecodeIntList(field, s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, common.Invalid(field, "Lista de ids inválida: "+s)
		}
		out = append(out, n)
	}
	return out, nil
}

// PathID lee el parámetro {id} de la ruta.
func PathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Invalid("id", "Id inválido: "+raw)
	}
	return id, nil
}

// PageParams lee page, linesPerPage, orderBy y direction del query string.
// Los ausentes toman los defaults; los no numéricos son ValidationError.
func PageParams(r *http.Request) (common.PageParams, error) {
	q := r.URL.Query()
	p := common.DefaultPageParams()
	verr := &common.ValidationError{}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			verr.Add("page", "Deve ser um número inteiro")
		}
		p.Page = n
	}
	if v := q.Get("linesPerPage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			verr.Add("linesPerPage", "Deve ser um número inteiro")
		}
		p.LinesPerPage = n
	}
	if v := q.Get("orderBy"); v != "" {
		p.OrderBy = v
	}
	if v := q.Get("direction"); v != "" {
		p.Direction = v
	}
	return p, verr.OrNil()
}

// ResourceLocation arma el Location de un recurso creado: URL del request + /{id}.
// X-Forwarded-Proto sólo cuenta si es http o https.
func ResourceLocation(r *http.Request, id int64) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch fwd := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); fwd {
	case "http", "https":
		scheme = fwd
	}
	return scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/") + "/" + strconv.FormatInt(id, 10)
}
