// Package catalog contiene DTOs de categorías y productos.
package catalog

// CategoryDTO es el body de lectura y escritura de una categoría.
type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// ProductDTO is the summary returned by product search.
type ProductDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"nome"`
	Price float64 `json:"preco"`
}

// ProductSearchRequest agrupa los filtros de GET /produtos.
// El paginado viaja aparte.
type ProductSearchRequest struct {
	Name        string
	CategoryIDs []int64
}
