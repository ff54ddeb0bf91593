package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/cursomvc/internal/domain/repository"
	"github.com/dropDatabas3/cursomvc/internal/metrics"
	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

// translated conserva la falla del store detrás del error de la taxonomía,
// para que LogFailure pueda registrar su clase.
type translated struct {
	error
	store *repository.StoreError
}

func (t *translated) Unwrap() error { return t.error }

// Translate envuelve el resultado de cada llamada al store.
// Los errores que no son *repository.StoreError, y los de clase desconocida,
// se propagan sin cambios (Fatal).
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var se *repository.StoreError
	if !errors.As(err, &se) {
		return err
	}
	metrics.RecordStoreFailure(se.Entity, se.Kind.String())

	if out := classify(se); out != nil {
		return &translated{error: out, store: se}
	}
	return err
}

// classify mapea la clase de falla a la taxonomía. nil = Fatal.
func classify(se *repository.StoreError) error {
	switch se.Kind {
	case repository.FailureNotFound:
		return &NotFoundError{Entity: se.Entity, ID: se.ID, Field: se.Field}
	case repository.FailureIntegrity:
		return &IntegrityError{Entity: se.Entity, ID: se.ID, Reason: integrityReason(se.Entity)}
	case repository.FailureConflict:
		if se.Field == "email" {
			return Invalid("email", "Email já existente")
		}
		return Invalid(se.Field, "Valor já existente")
	case repository.FailureInvalidSort:
		return Invalid("orderBy", fmt.Sprintf("Campo de ordenação inválido: %q", se.Field))
	case repository.FailureInvalidReference:
		return Invalid(referenceField(se.Field), fmt.Sprintf("Referência inexistente: %d", se.ID))
	case repository.FailureUnknown:
		return nil
	}
	return nil
}

// storeFailure recupera la falla del store detrás de err, traducida o no.
func storeFailure(err error) *repository.StoreError {
	var tr *translated
	if errors.As(err, &tr) {
		return tr.store
	}
	var se *repository.StoreError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

func integrityReason(entity string) string {
	switch entity {
	case repository.EntityCategory:
		return "Não é possível excluir uma categoria que possui produtos"
	case repository.EntityClient:
		return "Não é possível excluir porque há pedidos relacionados"
	}
	return "Não é possível excluir: há entidades relacionadas"
}

// referenceField mapea columnas del store a los nombres de campo del API.
func referenceField(column string) string {
	switch column {
	case "city_id":
		return "cidadeId"
	case "category_id":
		return "categorias"
	}
	return column
}

// entityLabel es el nombre de la entidad en los mensajes al cliente.
func entityLabel(entity string) string {
	switch entity {
	case repository.EntityCategory:
		return "Categoria"
	case repository.EntityClient:
		return "Cliente"
	case repository.EntityProduct:
		return "Produto"
	case repository.EntityCity:
		return "Cidade"
	case repository.EntityOrder:
		return "Pedido"
	}
	return entity
}

// LogFailure loguea el resultado fallido de una operación: Warn para errores
// del cliente, Error para los Fatal.
func LogFailure(ctx context.Context, op string, err error) {
	log := logger.FromWithFields(ctx, logger.Op(op))
	if se := storeFailure(err); se != nil {
		log = log.With(logger.FailureKind(se.Kind.String()), logger.EntityKind(se.Entity))
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrIntegrity), errors.Is(err, ErrAccessDenied):
		log.Warn("operation rejected", logger.Err(err))
	default:
		log.Error("operation failed", logger.Err(err))
	}
}
