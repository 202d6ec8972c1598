package e

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("already exists")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	// 400 Bad Request
	ErrNegativeStock = fmt.Errorf("%w: stock cannot be negative", ErrInvalidArgument)
	ErrNegativePrice = fmt.Errorf("%w: price cannot be negative", ErrInvalidArgument)

	// 409 Conflict
	ErrCategoryExists = fmt.Errorf("category %w", ErrConflict)
)

// ValidationError representa un error de validación sobre un campo concreto
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid construye un ValidationError para el campo indicado
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnknownField indica que un patch referencia un atributo no permitido
func UnknownField(field string) error {
	return fmt.Errorf("%w: %q", ErrInvalidField, field)
}

// Wrap envuelve un error con contexto
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
