package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

// ─── ProductRepository ───

type productRepo struct{ pool *pgxpool.Pool }

func (r *productRepo) FindByID(ctx context.Context, id int64) (*repository.Product, error) {
	var p repository.Product
	err := r.pool.QueryRow(ctx, `SELECT id, name, price FROM product WHERE id = $1`, id).Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		return nil, classify(err, opRead, repository.EntityProduct, id)
	}
	rows, err := r.pool.Query(ctx, `SELECT category_id FROM product_category WHERE product_id = $1 ORDER BY category_id`, id)
	if err != nil {
		return nil, classify(err, opRead, repository.EntityProduct, id)
	}
	if p.CategoryIDs, err = pgx.CollectRows(rows, pgx.RowTo[int64]); err != nil {
		return nil, classify(err, opRead, repository.EntityProduct, id)
	}
	return &p, nil
}

// Search usa EXISTS en lugar de JOIN para que un producto en varias
// categorías pedidas aparezca una sola vez.
// Una lista de categorías vacía no filtra.
func (r *productRepo) Search(ctx context.Context, filter repository.ProductSearch, req repository.PageRequest) (repository.Page[repository.Product], error) {
	order, err := orderClause(repository.EntityProduct, repository.ProductSortFields, req, "p")
	if err != nil {
		return repository.Page[repository.Product]{}, err
	}

	cats := filter.CategoryIDs
	if cats == nil {
		cats = []int64{}
	}
	const where = `
		FROM product p
		WHERE p.name ILIKE $1
		  AND (cardinality($2::bigint[]) = 0 OR EXISTS (
		        SELECT 1 FROM product_category pc
		        WHERE pc.product_id = p.id AND pc.category_id = ANY($2)))
	`
	pattern := likePattern(filter.Name)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) `+where, pattern, cats).Scan(&total); err != nil {
		return repository.Page[repository.Product]{}, classify(err, opRead, repository.EntityProduct, 0)
	}

	rows, err := r.pool.Query(ctx, `SELECT p.id, p.name, p.price `+where+order+` LIMIT $3 OFFSET $4`,
		pattern, cats, req.Size, req.Offset())
	if err != nil {
		return repository.Page[repository.Product]{}, classify(err, opRead, repository.EntityProduct, 0)
	}
	content, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.Product, error) {
		var p repository.Product
		err := row.Scan(&p.ID, &p.Name, &p.Price)
		return p, err
	})
	if err != nil {
		return repository.Page[repository.Product]{}, classify(err, opRead, repository.EntityProduct, 0)
	}

	if err := r.attachCategories(ctx, content); err != nil {
		return repository.Page[repository.Product]{}, classify(err, opRead, repository.EntityProduct, 0)
	}
	return newPage(content, total, req), nil
}

// attachCategories completa CategoryIDs de la página con una sola consulta.
func (r *productRepo) attachCategories(ctx context.Context, products []repository.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT product_id, category_id FROM product_category WHERE product_id = ANY($1) ORDER BY product_id, category_id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var pid, cid int64
		if err := rows.Scan(&pid, &cid); err != nil {
			return err
		}
		i := index[pid]
		products[i].CategoryIDs = append(products[i].CategoryIDs, cid)
	}
	return rows.Err()
}

func (r *productRepo) Create(ctx context.Context, p *repository.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify(err, opWrite, repository.EntityProduct, 0)
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, `INSERT INTO product (name, price) VALUES ($1, $2) RETURNING id`, p.Name, p.Price).Scan(&id); err != nil {
		return classify(err, opWrite, repository.EntityProduct, 0)
	}
	for _, cid := range p.CategoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO product_category (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, cid); err != nil {
			return classify(err, opWrite, repository.EntityProduct, cid)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(err, opWrite, repository.EntityProduct, 0)
	}
	p.ID = id
	return nil
}

// ─── OrderRepository ───

type orderRepo struct{ pool *pgxpool.Pool }

func (r *orderRepo) Create(ctx context.Context, o *repository.Order) error {
	const query = `
		INSERT INTO purchase_order (instant, client_id, delivery_address_id)
		VALUES (COALESCE($1::timestamptz, NOW()), $2, $3)
		RETURNING id, instant
	`
	var at *time.Time
	if !o.Instant.IsZero() {
		at = &o.Instant
	}
	if err := r.pool.QueryRow(ctx, query, at, o.ClientID, o.DeliveryAddressID).Scan(&o.ID, &o.Instant); err != nil {
		return classify(err, opWrite, repository.EntityOrder, 0)
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*repository.Order, error) {
	const query = `SELECT id, instant, client_id, delivery_address_id FROM purchase_order WHERE id = $1`
	var o repository.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.Instant, &o.ClientID, &o.DeliveryAddressID); err != nil {
		return nil, classify(err, opRead, repository.EntityOrder, id)
	}
	return &o, nil
}
