// Package memory implementa un adapter en memoria para store.
// Se usa en tests y con storage.driver=memory. Respeta las mismas
// garantías que el adapter pg: atomicidad por agregado, FKs y orden estable.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	store "github.com/dropDatabas3/cursomvc/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.DataAccessLayer, error) {
	return New(), nil
}

// New crea un store vacío.
func New() *Connection {
	return &Connection{db: newDB()}
}

// Connection es un DataAccessLayer respaldado por mapas.
type Connection struct {
	db *db
}

func (c *Connection) Name() string                   { return "memory" }
func (c *Connection) Ping(ctx context.Context) error { return ctx.Err() }
func (c *Connection) Close() error                   { return nil }

func (c *Connection) Categories() repository.CategoryRepository { return &categoryRepo{db: c.db} }
func (c *Connection) Clients() repository.ClientRepository      { return &clientRepo{db: c.db} }
func (c *Connection) Cities() repository.CityRepository         { return &cityRepo{db: c.db} }
func (c *Connection) Products() repository.ProductRepository    { return &productRepo{db: c.db} }
func (c *Connection) Orders() repository.OrderRepository        { return &orderRepo{db: c.db} }

// db es el estado compartido. Un único mutex serializa las escrituras,
// lo que da atomicidad por operación.
type db struct {
	mu sync.RWMutex

	seq map[string]int64 // secuencias por entidad, nunca se reutilizan IDs

	categories map[int64]repository.Category
	states     map[int64]repository.State
	cities     map[int64]repository.City
	clients    map[int64]*repository.Client
	emails     map[string]int64
	addresses  map[int64]int64 // address id -> client id
	products   map[int64]repository.Product
	orders     map[int64]repository.Order
}

func newDB() *db {
	return &db{
		seq:        make(map[string]int64),
		categories: make(map[int64]repository.Category),
		states:     make(map[int64]repository.State),
		cities:     make(map[int64]repository.City),
		clients:    make(map[int64]*repository.Client),
		emails:     make(map[string]int64),
		addresses:  make(map[int64]int64),
		products:   make(map[int64]repository.Product),
		orders:     make(map[int64]repository.Order),
	}
}

// next asigna el próximo ID de la entidad. Requiere mu tomado en escritura.
func (d *db) next(entity string) int64 {
	d.seq[entity]++
	return d.seq[entity]
}

// ─── Helpers de paginación ───

// comparator compara dos elementos por una columna.
type comparator[T any] func(a, b T) int

// sortPage ordena items por la columna pedida (desempate por id ascendente)
// y recorta la página.
func sortPage[T any](
	entity string,
	items []T,
	req repository.PageRequest,
	fields map[string]string,
	columns map[string]comparator[T],
	idOf func(T) int64,
) (repository.Page[T], error) {
	col, ok := fields[req.OrderBy]
	if !ok {
		return repository.Page[T]{}, &repository.StoreError{
			Kind: repository.FailureInvalidSort, Entity: entity, Field: req.OrderBy,
		}
	}
	compare := columns[col]

	slices.SortStableFunc(items, func(a, b T) int {
		c := compare(a, b)
		if req.Direction == repository.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(idOf(a), idOf(b))
	})

	total := len(items)
	start := req.Offset()
	if start < 0 || start > total {
		start = total
	}
	end := min(start+req.Size, total)

	content := make([]T, 0, end-start)
	content = append(content, items[start:end]...)

	return repository.Page[T]{
		Content:       content,
		TotalElements: int64(total),
		Number:        req.Page,
		Size:          req.Size,
		OrderBy:       req.OrderBy,
		Direction:     req.Direction,
	}, nil
}
