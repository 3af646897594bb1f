package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError error de validación con mensaje dirigido al usuario.
// Los handlers lo mapean a HTTP 400 con el mensaje tal cual.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation construye un ValidationError.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation indica si err es un error de validación.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
