package repository

import "context"

// Category es una categoría de productos. No tiene dueño ni hijos.
type Category struct {
	ID   int64
	Name string
}

// CategorySortFields mapea atributos expuestos (orderBy) a columnas.
var CategorySortFields = map[string]string{
	"id":   "id",
	"nome": "name",
}

// CategoryRepository define operaciones sobre categorías.
type CategoryRepository interface {
	// FindByID retorna FailureNotFound si no existe.
	FindByID(ctx context.Context, id int64) (*Category, error)

	FindAll(ctx context.Context) ([]Category, error)

	// FindPage retorna FailureInvalidSort si req.OrderBy no está en CategorySortFields.
	FindPage(ctx context.Context, req PageRequest) (Page[Category], error)

	// Create persiste la categoría y asigna c.ID.
	Create(ctx context.Context, c *Category) error

	// Update reescribe el nombre. Retorna FailureNotFound si no existe.
	Update(ctx context.Context, c *Category) error

	// Delete retorna FailureNotFound si no existe y FailureIntegrity si hay productos asociados.
	Delete(ctx context.Context, id int64) error
}
