package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/domain/types"
)

// ─── ClientRepository ───

type clientRepo struct{ pool *pgxpool.Pool }

const clientColumns = `id, name, email, tax_id, type, password_hash`

func scanClient(row pgx.Row) (*repository.Client, error) {
	var c repository.Client
	var typ int16
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.TaxID, &typ, &c.PasswordHash); err != nil {
		return nil, err
	}
	c.Type = types.ClientType(typ)
	return &c, nil
}

func (r *clientRepo) FindByID(ctx context.Context, id int64) (*repository.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM client WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, opRead, repository.EntityClient, id)
	}
	if err := r.loadChildren(ctx, c); err != nil {
		return nil, classify(err, opRead, repository.EntityClient, id)
	}
	return c, nil
}

func (r *clientRepo) FindByEmail(ctx context.Context, email string) (*repository.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM client WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &repository.StoreError{Kind: repository.FailureNotFound, Entity: repository.EntityClient, Field: "email"}
		}
		return nil, classify(err, opRead, repository.EntityClient, 0)
	}
	if err := r.loadChildren(ctx, c); err != nil {
		return nil, classify(err, opRead, repository.EntityClient, c.ID)
	}
	return c, nil
}

// loadChildren completa teléfonos, roles y direcciones (con ciudad y estado).
func (r *clientRepo) loadChildren(ctx context.Context, c *repository.Client) error {
	rows, err := r.pool.Query(ctx, `SELECT phone FROM client_phone WHERE client_id = $1 ORDER BY position`, c.ID)
	if err != nil {
		return err
	}
	if c.Phones, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `SELECT role FROM client_role WHERE client_id = $1 ORDER BY role`, c.ID)
	if err != nil {
		return err
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[int16])
	if err != nil {
		return err
	}
	for _, code := range codes {
		c.Roles = append(c.Roles, types.Role(code))
	}

	const addrQuery = `
		SELECT a.id, a.street, a.number, COALESCE(a.complement, ''), COALESCE(a.district, ''),
		       COALESCE(a.postal_code, ''), ci.id, ci.name, s.name
		FROM address a
		JOIN city ci ON ci.id = a.city_id
		JOIN state s ON s.id = ci.state_id
		WHERE a.client_id = $1
		ORDER BY a.id
	`
	rows, err = r.pool.Query(ctx, addrQuery, c.ID)
	if err != nil {
		return err
	}
	addrs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*repository.Address, error) {
		var a repository.Address
		err := row.Scan(&a.ID, &a.Street, &a.Number, &a.Complement, &a.District,
			&a.PostalCode, &a.City.ID, &a.City.Name, &a.City.StateName)
		return &a, err
	})
	if err != nil {
		return err
	}
	for _, a := range addrs {
		c.AddAddress(a)
	}
	return nil
}

func (r *clientRepo) FindAll(ctx context.Context) ([]repository.Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM client ORDER BY id`)
	if err != nil {
		return nil, classify(err, opRead, repository.EntityClient, 0)
	}
	out, err := pgx.CollectRows(rows, collectClient)
	if err != nil {
		return nil, classify(err, opRead, repository.EntityClient, 0)
	}
	return out, nil
}

// FindPage retorna sólo los campos escalares; los listados no exponen el agregado.
func (r *clientRepo) FindPage(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Client], error) {
	order, err := orderClause(repository.EntityClient, repository.ClientSortFields, req, "")
	if err != nil {
		return repository.Page[repository.Client]{}, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client`).Scan(&total); err != nil {
		return repository.Page[repository.Client]{}, classify(err, opRead, repository.EntityClient, 0)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM client `+order+` LIMIT $1 OFFSET $2`, req.Size, req.Offset())
	if err != nil {
		return repository.Page[repository.Client]{}, classify(err, opRead, repository.EntityClient, 0)
	}
	content, err := pgx.CollectRows(rows, collectClient)
	if err != nil {
		return repository.Page[repository.Client]{}, classify(err, opRead, repository.EntityClient, 0)
	}
	return newPage(content, total, req), nil
}

func collectClient(row pgx.CollectableRow) (repository.Client, error) {
	c, err := scanClient(row)
	if err != nil {
		return repository.Client{}, err
	}
	return *c, nil
}

// Create inserta cliente, teléfonos, roles y direcciones en una única transacción.
// Los IDs se escriben en c sólo si el commit tuvo éxito.
func (r *clientRepo) Create(ctx context.Context, c *repository.Client) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify(err, opWrite, repository.EntityClient, 0)
	}
	defer tx.Rollback(ctx)

	var clientID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO client (name, email, tax_id, type, password_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.Name, c.Email, c.TaxID, int16(c.Type.Code()), c.PasswordHash,
	).Scan(&clientID)
	if err != nil {
		return classify(err, opWrite, repository.EntityClient, 0)
	}

	for i, phone := range c.Phones {
		_, err = tx.Exec(ctx,
			`INSERT INTO client_phone (client_id, position, phone) VALUES ($1, $2, $3)`,
			clientID, i, phone)
		if err != nil {
			return classify(err, opWrite, repository.EntityClient, 0)
		}
	}

	for _, role := range c.Roles {
		_, err = tx.Exec(ctx,
			`INSERT INTO client_role (client_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			clientID, int16(role))
		if err != nil {
			return classify(err, opWrite, repository.EntityClient, 0)
		}
	}

	addrIDs := make([]int64, len(c.Addresses))
	for i, a := range c.Addresses {
		err = tx.QueryRow(ctx, `
			INSERT INTO address (street, number, complement, district, postal_code, client_id, city_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			a.Street, a.Number, nullIfEmpty(a.Complement), nullIfEmpty(a.District),
			nullIfEmpty(a.PostalCode), clientID, a.City.ID,
		).Scan(&addrIDs[i])
		if err != nil {
			return classify(err, opWrite, repository.EntityAddress, a.City.ID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(err, opWrite, repository.EntityClient, 0)
	}

	c.ID = clientID
	for i, a := range c.Addresses {
		a.ID = addrIDs[i]
		a.Client = c
	}
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *repository.Client) error {
	tag, err := r.pool.Exec(ctx, `UPDATE client SET name = $2, email = $3 WHERE id = $1`, c.ID, c.Name, c.Email)
	if err != nil {
		return classify(err, opWrite, repository.EntityClient, c.ID)
	}
	if tag.RowsAffected() == 0 {
		return repository.NotFound(repository.EntityClient, c.ID)
	}
	return nil
}

func (r *clientRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE client SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return classify(err, opWrite, repository.EntityClient, id)
	}
	if tag.RowsAffected() == 0 {
		return repository.NotFound(repository.EntityClient, id)
	}
	return nil
}

// Delete es un único DELETE atómico: las direcciones, teléfonos y roles caen
// por ON DELETE CASCADE; un pedido vivo produce 23503.
func (r *clientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM client WHERE id = $1`, id)
	if err != nil {
		return classify(err, opDelete, repository.EntityClient, id)
	}
	if tag.RowsAffected() == 0 {
		return repository.NotFound(repository.EntityClient, id)
	}
	return nil
}

// ─── CityRepository ───

type cityRepo struct{ pool *pgxpool.Pool }

func (r *cityRepo) CreateState(ctx context.Context, s *repository.State) error {
	if err := r.pool.QueryRow(ctx, `INSERT INTO state (name) VALUES ($1) RETURNING id`, s.Name).Scan(&s.ID); err != nil {
		return classify(err, opWrite, repository.EntityState, 0)
	}
	return nil
}

func (r *cityRepo) CreateCity(ctx context.Context, c *repository.City) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO city (name, state_id) VALUES ($1, $2) RETURNING id`,
		c.Name, c.State.ID,
	).Scan(&c.ID)
	if err != nil {
		return classify(err, opWrite, repository.EntityCity, c.State.ID)
	}
	return nil
}

func (r *cityRepo) FindByID(ctx context.Context, id int64) (*repository.City, error) {
	const query = `
		SELECT ci.id, ci.name, s.id, s.name
		FROM city ci JOIN state s ON s.id = ci.state_id
		WHERE ci.id = $1
	`
	var c repository.City
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.State.ID, &c.State.Name); err != nil {
		return nil, classify(err, opRead, repository.EntityCity, id)
	}
	return &c, nil
}
