package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

type categoryRepo struct{ db *db }

var categoryColumns = map[string]comparator[repository.Category]{
	"id":   func(a, b repository.Category) int { return cmp.Compare(a.ID, b.ID) },
	"name": func(a, b repository.Category) int { return strings.Compare(a.Name, b.Name) },
}

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*repository.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.NotFound(repository.EntityCategory, id)
	}
	return &c, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]repository.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]repository.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b repository.Category) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *categoryRepo) FindPage(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Category], error) {
	all, _ := r.FindAll(ctx)
	return sortPage(repository.EntityCategory, all, req, repository.CategorySortFields, categoryColumns,
		func(c repository.Category) int64 { return c.ID })
}

func (r *categoryRepo) Create(ctx context.Context, c *repository.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c.ID = r.db.next(repository.EntityCategory)
	r.db.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c *repository.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[c.ID]; !ok {
		return repository.NotFound(repository.EntityCategory, c.ID)
	}
	r.db.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[id]; !ok {
		return repository.NotFound(repository.EntityCategory, id)
	}
	for _, p := range r.db.products {
		if slices.Contains(p.CategoryIDs, id) {
			return repository.Fail(repository.FailureIntegrity, repository.EntityCategory, id, nil)
		}
	}
	delete(r.db.categories, id)
	return nil
}
