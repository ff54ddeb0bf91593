package repository

import "context"

// Product es un producto del catálogo.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	CategoryIDs []int64
}

// ProductSortFields mapea atributos expuestos (orderBy) a columnas.
var ProductSortFields = map[string]string{
	"id":    "id",
	"nome":  "name",
	"preco": "price",
}

// ProductSearch filtra productos por nombre y categorías.
type ProductSearch struct {
	Name        string  // substring, case-insensitive
	CategoryIDs []int64 // el producto debe pertenecer a alguna
}

// ProductRepository define operaciones sobre productos.
type ProductRepository interface {
	// FindByID retorna FailureNotFound si no existe.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Search retorna productos distintos que matchean el filtro, paginados.
	Search(ctx context.Context, filter ProductSearch, req PageRequest) (Page[Product], error)

	// Create persiste el producto y sus categorías.
	// Retorna FailureInvalidReference si alguna categoría no existe.
	Create(ctx context.Context, p *Product) error
}
