// Package common contiene DTOs compartidos entre recursos.
package common

import "github.com/dropDatabas3/cursomvc/internal/domain/repository"

// SortOrder describe el orden aplicado a una página.
type SortOrder struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// PageResponse es el sobre JSON de una página de resultados.
type PageResponse[T any] struct {
	Content          []T         `json:"content"`
	TotalElements    int64       `json:"totalElements"`
	TotalPages       int         `json:"totalPages"`
	Number           int         `json:"number"`
	Size             int         `json:"size"`
	NumberOfElements int         `json:"numberOfElements"`
	First            bool        `json:"first"`
	Last             bool        `json:"last"`
	Empty            bool        `json:"empty"`
	Sort             []SortOrder `json:"sort"`
}

// FromPage arma el sobre a partir de una página del store.
func FromPage[T any](p repository.Page[T]) PageResponse[T] {
	content := p.Content
	if content == nil {
		content = []T{}
	}
	total := p.TotalPages()
	resp := PageResponse[T]{
		Content:          content,
		TotalElements:    p.TotalElements,
		TotalPages:       total,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(content),
		First:            p.Number == 0,
		Last:             p.Number >= total-1,
		Empty:            len(content) == 0,
		Sort:             []SortOrder{},
	}
	if p.OrderBy != "" {
		resp.Sort = append(resp.Sort, SortOrder{Property: p.OrderBy, Direction: string(p.Direction)})
	}
	return resp
}
