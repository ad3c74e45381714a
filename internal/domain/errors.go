package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// ValidationError describe una entrada rechazada antes de cualquier llamada remota.
// Envuelve ErrInvalidInput para que errors.Is funcione en la capa HTTP.
type ValidationError struct {
	Message string
}

// NewValidationError construye un error de validación con mensaje para el cliente.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
