// Package apierror provides the structured failure vocabulary shared by the
// validation, service, and handler layers: validation failures (field-scoped,
// collected in full), not-found lookups, and integrity violations. All errors
// returned to clients go through this package to ensure consistency and to
// prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError collects every field failure of one operation. It is never
// short-circuited: callers keep Add()ing so the client can display all
// problems at once.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}

// Add records one field-scoped failure. A later message for the same field
// overwrites the earlier one.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%d campos)", e.Detail, len(e.Fields))
}

// OrNil returns the error when at least one failure was recorded, untyped nil
// otherwise. Using OrNil avoids the typed-nil pitfall in callers that do
// `if err := x.Validar(); err != nil`.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NotFoundError signals that a requested id has no matching record.
type NotFoundError struct {
	Entidad string
}

func NotFound(entidad string) *NotFoundError {
	return &NotFoundError{Entidad: entidad}
}

func (e *NotFoundError) Error() string {
	return e.Entidad + " no encontrado"
}

// IntegrityError signals a uniqueness or foreign-key constraint violation,
// detected either by a service pre-check or by the storage write itself.
type IntegrityError struct {
	Detalle string
}

func Integrity(detalle string) *IntegrityError {
	return &IntegrityError{Detalle: detalle}
}

func (e *IntegrityError) Error() string {
	return e.Detalle
}

// FromGorm translates a storage error into the taxonomy the caller already
// handles: record-not-found becomes NotFoundError, duplicate-key and FK
// violations become IntegrityError (requires TranslateError on the gorm
// config). Anything else passes through untouched.
func FromGorm(err error, entidad string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(entidad)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Integrity("Ya existe un registro con esos datos: " + entidad)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Integrity("Referencia inválida en " + entidad)
	default:
		return err
	}
}
