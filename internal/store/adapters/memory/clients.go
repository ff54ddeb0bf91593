package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

type clientRepo struct{ db *db }

var clientColumns = map[string]comparator[repository.Client]{
	"id":     func(a, b repository.Client) int { return cmp.Compare(a.ID, b.ID) },
	"name":   func(a, b repository.Client) int { return strings.Compare(a.Name, b.Name) },
	"email":  func(a, b repository.Client) int { return strings.Compare(a.Email, b.Email) },
	"tax_id": func(a, b repository.Client) int { return strings.Compare(a.TaxID, b.TaxID) },
	"type":   func(a, b repository.Client) int { return cmp.Compare(a.Type, b.Type) },
}

// cloneClient copia profunda del agregado. Las back-references de las
// direcciones apuntan al clon.
func cloneClient(src *repository.Client) *repository.Client {
	dst := *src
	dst.Phones = slices.Clone(src.Phones)
	dst.Roles = slices.Clone(src.Roles)
	dst.Addresses = make([]*repository.Address, 0, len(src.Addresses))
	for _, a := range src.Addresses {
		ac := *a
		ac.Client = &dst
		dst.Addresses = append(dst.Addresses, &ac)
	}
	return &dst
}

// resolveCities completa nombre de ciudad y estado. Requiere mu tomado.
func (r *clientRepo) resolveCities(c *repository.Client) {
	for _, a := range c.Addresses {
		if city, ok := r.db.cities[a.City.ID]; ok {
			a.City.Name = city.Name
			a.City.StateName = city.State.Name
		}
	}
}

func (r *clientRepo) load(c *repository.Client) *repository.Client {
	out := cloneClient(c)
	r.resolveCities(out)
	return out
}

func (r *clientRepo) FindByID(ctx context.Context, id int64) (*repository.Client, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.clients[id]
	if !ok {
		return nil, repository.NotFound(repository.EntityClient, id)
	}
	return r.load(c), nil
}

func (r *clientRepo) FindByEmail(ctx context.Context, email string) (*repository.Client, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.emails[email]
	if !ok {
		return nil, &repository.StoreError{Kind: repository.FailureNotFound, Entity: repository.EntityClient, Field: "email"}
	}
	return r.load(r.db.clients[id]), nil
}

func (r *clientRepo) FindAll(ctx context.Context) ([]repository.Client, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]repository.Client, 0, len(r.db.clients))
	for _, c := range r.db.clients {
		out = append(out, *r.load(c))
	}
	slices.SortFunc(out, func(a, b repository.Client) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *clientRepo) FindPage(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Client], error) {
	all, _ := r.FindAll(ctx)
	return sortPage(repository.EntityClient, all, req, repository.ClientSortFields, clientColumns,
		func(c repository.Client) int64 { return c.ID })
}

func (r *clientRepo) Create(ctx context.Context, c *repository.Client) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, dup := r.db.emails[c.Email]; dup {
		return &repository.StoreError{Kind: repository.FailureConflict, Entity: repository.EntityClient, Field: "email"}
	}
	for _, a := range c.Addresses {
		if _, ok := r.db.cities[a.City.ID]; !ok {
			return &repository.StoreError{
				Kind: repository.FailureInvalidReference, Entity: repository.EntityAddress,
				ID: a.City.ID, Field: "city_id",
			}
		}
	}

	// Validado todo: asignar IDs y persistir
	c.ID = r.db.next(repository.EntityClient)
	for _, a := range c.Addresses {
		a.ID = r.db.next(repository.EntityAddress)
		a.Client = c
		r.db.addresses[a.ID] = c.ID
	}
	r.db.clients[c.ID] = cloneClient(c)
	r.db.emails[c.Email] = c.ID
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *repository.Client) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.clients[c.ID]
	if !ok {
		return repository.NotFound(repository.EntityClient, c.ID)
	}
	if c.Email != cur.Email {
		if other, dup := r.db.emails[c.Email]; dup && other != c.ID {
			return &repository.StoreError{Kind: repository.FailureConflict, Entity: repository.EntityClient, ID: c.ID, Field: "email"}
		}
		delete(r.db.emails, cur.Email)
		r.db.emails[c.Email] = c.ID
	}
	cur.Name = c.Name
	cur.Email = c.Email
	return nil
}

func (r *clientRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.clients[id]
	if !ok {
		return repository.NotFound(repository.EntityClient, id)
	}
	cur.PasswordHash = hash
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.clients[id]
	if !ok {
		return repository.NotFound(repository.EntityClient, id)
	}
	for _, o := range r.db.orders {
		if o.ClientID == id {
			return repository.Fail(repository.FailureIntegrity, repository.EntityClient, id, nil)
		}
	}
	for _, a := range cur.Addresses {
		delete(r.db.addresses, a.ID)
	}
	delete(r.db.emails, cur.Email)
	delete(r.db.clients, id)
	return nil
}
