package pg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
)

// Códigos SQLSTATE relevantes.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// op distingue el contexto del error: una FK violada al insertar es una
// referencia inválida; al borrar, una fila viva que todavía apunta aquí.
type op int

const (
	opRead op = iota
	opWrite
	opDelete
)

// classify traduce errores del driver a *repository.StoreError.
func classify(err error, o op, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.NotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &repository.StoreError{
				Kind: repository.FailureConflict, Entity: entity, ID: id,
				Field: constraintField(pgErr.TableName, pgErr.ConstraintName), Err: err,
			}
		case codeForeignKeyViolation:
			kind := repository.FailureInvalidReference
			if o == opDelete {
				kind = repository.FailureIntegrity
			}
			return &repository.StoreError{
				Kind: kind, Entity: entity, ID: id,
				Field: constraintField(pgErr.TableName, pgErr.ConstraintName), Err: err,
			}
		}
	}
	return repository.Fail(repository.FailureUnknown, entity, id, err)
}

// constraintField extrae la columna de un nombre de constraint por defecto
// de Postgres: "address_city_id_fkey" -> "city_id", "client_email_key" -> "email".
func constraintField(table, name string) string {
	for _, suffix := range []string{"_fkey", "_key"} {
		if s, ok := strings.CutSuffix(name, suffix); ok {
			return strings.TrimPrefix(s, table+"_")
		}
	}
	return name
}

// orderClause arma el ORDER BY a partir de la whitelist. El desempate por
// id garantiza un orden total entre páginas.
func orderClause(entity string, fields map[string]string, req repository.PageRequest, alias string) (string, error) {
	col, ok := fields[req.OrderBy]
	if !ok {
		return "", &repository.StoreError{Kind: repository.FailureInvalidSort, Entity: entity, Field: req.OrderBy}
	}
	dir := "ASC"
	if req.Direction == repository.Desc {
		dir = "DESC"
	}
	if alias != "" {
		return fmt.Sprintf("ORDER BY %s.%s %s, %s.id ASC", alias, col, dir, alias), nil
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, dir), nil
}

func newPage[T any](content []T, total int64, req repository.PageRequest) repository.Page[T] {
	if content == nil {
		content = []T{}
	}
	return repository.Page[T]{
		Content:       content,
		TotalElements: total,
		Number:        req.Page,
		Size:          req.Size,
		OrderBy:       req.OrderBy,
		Direction:     req.Direction,
	}
}

// likePattern escapa comodines de LIKE y envuelve en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
