package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

// ─── Cities ───

type cityRepo struct{ db *db }

func (r *cityRepo) CreateState(ctx context.Context, s *repository.State) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s.ID = r.db.next(repository.EntityState)
	r.db.states[s.ID] = *s
	return nil
}

func (r *cityRepo) CreateCity(ctx context.Context, c *repository.City) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	st, ok := r.db.states[c.State.ID]
	if !ok {
		return &repository.StoreError{
			Kind: repository.FailureInvalidReference, Entity: repository.EntityCity,
			ID: c.State.ID, Field: "state_id",
		}
	}
	c.State = st
	c.ID = r.db.next(repository.EntityCity)
	r.db.cities[c.ID] = *c
	return nil
}

func (r *cityRepo) FindByID(ctx context.Context, id int64) (*repository.City, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.cities[id]
	if !ok {
		return nil, repository.NotFound(repository.EntityCity, id)
	}
	return &c, nil
}

// ─── Products ───

type productRepo struct{ db *db }

var productColumns = map[string]comparator[repository.Product]{
	"id":    func(a, b repository.Product) int { return cmp.Compare(a.ID, b.ID) },
	"name":  func(a, b repository.Product) int { return strings.Compare(a.Name, b.Name) },
	"price": func(a, b repository.Product) int { return cmp.Compare(a.Price, b.Price) },
}

func cloneProduct(p repository.Product) repository.Product {
	p.CategoryIDs = slices.Clone(p.CategoryIDs)
	return p
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*repository.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.NotFound(repository.EntityProduct, id)
	}
	out := cloneProduct(p)
	return &out, nil
}

func (r *productRepo) Search(ctx context.Context, filter repository.ProductSearch, req repository.PageRequest) (repository.Page[repository.Product], error) {
	r.db.mu.RLock()
	needle := strings.ToLower(filter.Name)
	var matched []repository.Product
	for _, p := range r.db.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !slices.ContainsFunc(p.CategoryIDs, func(id int64) bool {
			return slices.Contains(filter.CategoryIDs, id)
		}) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	r.db.mu.RUnlock()

	return sortPage(repository.EntityProduct, matched, req, repository.ProductSortFields, productColumns,
		func(p repository.Product) int64 { return p.ID })
}

func (r *productRepo) Create(ctx context.Context, p *repository.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, cid := range p.CategoryIDs {
		if _, ok := r.db.categories[cid]; !ok {
			return &repository.StoreError{
				Kind: repository.FailureInvalidReference, Entity: repository.EntityProduct,
				ID: cid, Field: "category_id",
			}
		}
	}
	p.ID = r.db.next(repository.EntityProduct)
	r.db.products[p.ID] = cloneProduct(*p)
	return nil
}

// ─── Orders ───

type orderRepo struct{ db *db }

func (r *orderRepo) Create(ctx context.Context, o *repository.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.clients[o.ClientID]; !ok {
		return &repository.StoreError{
			Kind: repository.FailureInvalidReference, Entity: repository.EntityOrder,
			ID: o.ClientID, Field: "client_id",
		}
	}
	if _, ok := r.db.addresses[o.DeliveryAddressID]; !ok {
		return &repository.StoreError{
			Kind: repository.FailureInvalidReference, Entity: repository.EntityOrder,
			ID: o.DeliveryAddressID, Field: "delivery_address_id",
		}
	}
	o.ID = r.db.next(repository.EntityOrder)
	r.db.orders[o.ID] = *o
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*repository.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	o, ok := r.db.orders[id]
	if !ok {
		return nil, repository.NotFound(repository.EntityOrder, id)
	}
	return &o, nil
}
