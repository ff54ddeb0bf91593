// Package pg implementa el adapter PostgreSQL.
// Usa pgxpool directamente; las migraciones viven en migrations/postgres.
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	store "github.com/dropDatabas3/cursomvc/internal/store"
)

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

// nullIfEmpty retorna nil si el string está vacío.
// Útil para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// postgresAdapter implementa store.Adapter para PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.DataAccessLayer, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	// Configurar pool
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	// Verificar conexión
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &pgConnection{pool: pool}, nil
}

// pgConnection representa una conexión activa a PostgreSQL.
type pgConnection struct {
	pool *pgxpool.Pool
}

func (c *pgConnection) Name() string { return "postgres" }

func (c *pgConnection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *pgConnection) Close() error {
	c.pool.Close()
	return nil
}

// ─── Repositorios ───

func (c *pgConnection) Categories() repository.CategoryRepository { return &categoryRepo{pool: c.pool} }
func (c *pgConnection) Clients() repository.ClientRepository      { return &clientRepo{pool: c.pool} }
func (c *pgConnection) Cities() repository.CityRepository         { return &cityRepo{pool: c.pool} }
func (c *pgConnection) Products() repository.ProductRepository    { return &productRepo{pool: c.pool} }
func (c *pgConnection) Orders() repository.OrderRepository        { return &orderRepo{pool: c.pool} }

// MigrationExecutor implementa store.MigratableConnection.
func (c *pgConnection) MigrationExecutor() store.SQLExecutor {
	return &pgxPoolWrapper{pool: c.pool}
}

// pgxPoolWrapper adapta pgxpool.Pool a store.SQLExecutor.
type pgxPoolWrapper struct {
	pool *pgxpool.Pool
}

func (w *pgxPoolWrapper) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := w.pool.Exec(ctx, sql, args...)
	return err
}

func (w *pgxPoolWrapper) QueryVersions(ctx context.Context, sql string) ([]int, error) {
	rows, err := w.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// PoolStats implementa metrics.PoolStatter.
func (c *pgConnection) PoolStats() (acquired, idle, total int32) {
	s := c.pool.Stat()
	return s.AcquiredConns(), s.IdleConns(), s.TotalConns()
}
