package repository

import (
	"errors"
	"fmt"
)

// FailureKind clasifica una falla del store.
// La capa de servicios hace un switch exhaustivo sobre este valor.
type FailureKind int

const (
	// FailureUnknown es cualquier falla no clasificada (conexión, timeout, bug).
	FailureUnknown FailureKind = iota
	// FailureNotFound indica que no existe fila para el ID pedido.
	FailureNotFound
	// FailureIntegrity indica que un delete viola una referencia (FK) viva.
	FailureIntegrity
	// FailureConflict indica violación de unicidad (ej: email duplicado).
	FailureConflict
	// FailureInvalidSort indica que el campo de orden no existe o no es ordenable.
	FailureInvalidSort
	// FailureInvalidReference indica una referencia débil que no resuelve (ej: city_id inexistente).
	FailureInvalidReference
)

func (k FailureKind) String() string {
	switch k {
	case FailureNotFound:
		return "not_found"
	case FailureIntegrity:
		return "integrity"
	case FailureConflict:
		return "conflict"
	case FailureInvalidSort:
		return "invalid_sort"
	case FailureInvalidReference:
		return "invalid_reference"
	}
	return "unknown"
}

// Nombres de entidad usados en StoreError.Entity.
const (
	EntityCategory = "category"
	EntityClient   = "client"
	EntityAddress  = "address"
	EntityCity     = "city"
	EntityState    = "state"
	EntityProduct  = "product"
	EntityOrder    = "order"
)

// StoreError es el resultado tipado de una operación fallida del store.
type StoreError struct {
	Kind   FailureKind
	Entity string // "category", "client", ...
	ID     int64  // 0 si no aplica
	Field  string // campo involucrado (orderBy, city_id, email), opcional
	Err    error  // causa original del driver, opcional
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store: %s %s", e.Entity, e.Kind)
	if e.ID != 0 {
		msg += fmt.Sprintf(" (id=%d)", e.ID)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" [%s]", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error { return e.Err }

// Fail construye un *StoreError.
func Fail(kind FailureKind, entity string, id int64, cause error) *StoreError {
	return &StoreError{Kind: kind, Entity: entity, ID: id, Err: cause}
}

// NotFound es un atajo para FailureNotFound.
func NotFound(entity string, id int64) *StoreError {
	return &StoreError{Kind: FailureNotFound, Entity: entity, ID: id}
}

// KindOf retorna el FailureKind de err, o FailureUnknown si err no es un *StoreError.
func KindOf(err error) FailureKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return FailureUnknown
}

// IsNotFound verifica si el error es FailureNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == FailureNotFound
}

// IsIntegrity verifica si el error es FailureIntegrity.
func IsIntegrity(err error) bool {
	return KindOf(err) == FailureIntegrity
}

// IsConflict verifica si el error es FailureConflict.
func IsConflict(err error) bool {
	return KindOf(err) == FailureConflict
}
