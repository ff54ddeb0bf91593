package repository

import "math"

// Direction es el sentido del orden de una página.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// PageRequest describe una página a leer del store.
type PageRequest struct {
	Page      int // base 0
	Size      int
	OrderBy   string // atributo expuesto; el store lo resuelve contra su whitelist
	Direction Direction
}

// Offset retorna la cantidad de filas a saltar. Satura en math.MaxInt
// en vez de desbordar.
func (r PageRequest) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// Page es el resultado de una consulta paginada.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Number        int
	Size          int
	OrderBy       string
	Direction     Direction
}

// TotalPages calcula la cantidad de páginas.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage transforma el contenido de una página preservando su metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := Page[R]{
		Content:       make([]R, len(p.Content)),
		TotalElements: p.TotalElements,
		Number:        p.Number,
		Size:          p.Size,
		OrderBy:       p.OrderBy,
		Direction:     p.Direction,
	}
	for i, v := range p.Content {
		out.Content[i] = fn(v)
	}
	return out
}
