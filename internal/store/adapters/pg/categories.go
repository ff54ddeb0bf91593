package pg

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

// ─── CategoryRepository ───

type categoryRepo struct{ pool *pgxpool.Pool }

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*repository.Category, error) {
	const query = `SELECT id, name FROM category WHERE id = $1`
	var c repository.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name); err != nil {
		return nil, classify(err, opRead, repository.EntityCategory, id)
	}
	return &c, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]repository.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM category ORDER BY id`)
	if err != nil {
		return nil, classify(err, opRead, repository.EntityCategory, 0)
	}
	out, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, classify(err, opRead, repository.EntityCategory, 0)
	}
	return out, nil
}

func (r *categoryRepo) FindPage(ctx context.Context, req repository.PageRequest) (repository.Page[repository.Category], error) {
	order, err := orderClause(repository.EntityCategory, repository.CategorySortFields, req, "")
	if err != nil {
		return repository.Page[repository.Category]{}, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM category`).Scan(&total); err != nil {
		return repository.Page[repository.Category]{}, classify(err, opRead, repository.EntityCategory, 0)
	}

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM category `+order+` LIMIT $1 OFFSET $2`, req.Size, req.Offset())
	if err != nil {
		return repository.Page[repository.Category]{}, classify(err, opRead, repository.EntityCategory, 0)
	}
	content, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return repository.Page[repository.Category]{}, classify(err, opRead, repository.EntityCategory, 0)
	}
	return newPage(content, total, req), nil
}

func (r *categoryRepo) Create(ctx context.Context, c *repository.Category) error {
	const query = `INSERT INTO category (name) VALUES ($1) RETURNING id`
	if err := r.pool.QueryRow(ctx, query, c.Name).Scan(&c.ID); err != nil {
		return classify(err, opWrite, repository.EntityCategory, 0)
	}
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c *repository.Category) error {
	tag, err := r.pool.Exec(ctx, `UPDATE category SET name = $2 WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		return classify(err, opWrite, repository.EntityCategory, c.ID)
	}
	if tag.RowsAffected() == 0 {
		return repository.NotFound(repository.EntityCategory, c.ID)
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return classify(err, opDelete, repository.EntityCategory, id)
	}
	if tag.RowsAffected() == 0 {
		return repository.NotFound(repository.EntityCategory, id)
	}
	return nil
}

func scanCategory(row pgx.CollectableRow) (repository.Category, error) {
	var c repository.Category
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}
