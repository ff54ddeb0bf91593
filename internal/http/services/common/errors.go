// Package common contiene piezas compartidas por los services:
// la taxonomía de errores, el traductor de fallas del store y el paginado.
package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/cursomvc/internal/security/authz"
)

// Taxonomía de errores de los services. Los controllers hacen errors.Is contra
// estos sentinels; cualquier otro error es Fatal (500).
var (
	ErrValidation   = errors.New("validation error")
	ErrAccessDenied = authz.ErrAccessDenied
	ErrNotFound     = errors.New("not found")
	ErrIntegrity    = errors.New("data integrity violation")
)

// FieldViolation es un error de validación sobre un campo.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError agrupa violaciones de campos. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Violations []FieldViolation
}

// Invalid construye un ValidationError de un único campo.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// OrNil retorna nil si no hay violaciones.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError lleva el ID pedido y el tipo de entidad.
// Field se usa cuando la búsqueda no fue por ID (ej: email).
type NotFoundError struct {
	Entity string
	ID     int64
	Field  string
}

func (e *NotFoundError) Error() string {
	if e.Field != "" && e.ID == 0 {
		return fmt.Sprintf("Objeto não encontrado! Campo: %s, Tipo: %s", e.Field, entityLabel(e.Entity))
	}
	return fmt.Sprintf("Objeto não encontrado! Id: %d, Tipo: %s", e.ID, entityLabel(e.Entity))
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IntegrityError indica que un delete fue bloqueado por referencias vivas.
type IntegrityError struct {
	Entity string
	ID     int64
	Reason string
}

func (e *IntegrityError) Error() string { return e.Reason }

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }
