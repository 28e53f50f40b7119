package editor

import (
	"errors"
	"fmt"
)

// ValidationKind tipo de error de validación local.
type ValidationKind int

const (
	DuplicateKey ValidationKind = iota + 1
	InvalidQuantity
	MissingField
)

// ValidationError error detectado antes de cualquier llamada de red. Nunca se envía al servicio.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case DuplicateKey:
		return "Este SKU ya existe en la tienda indicada. Usa una combinación SKU-tienda única."
	case InvalidQuantity:
		return "La cantidad debe ser un número entero mayor o igual a cero."
	case MissingField:
		return fmt.Sprintf("El campo %s es obligatorio.", e.Field)
	default:
		return "datos inválidos"
	}
}

// Is permite errors.Is(err, ErrDuplicateKey) comparando solo el tipo.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

// Centinelas para errors.Is.
var (
	ErrDuplicateKey    = &ValidationError{Kind: DuplicateKey}
	ErrInvalidQuantity = &ValidationError{Kind: InvalidQuantity}
	ErrMissingField    = &ValidationError{Kind: MissingField}
)

// RemoteRejection el servicio rechazó la petición aunque la validación local pasó.
// Message es el texto del servicio y se muestra tal cual.
type RemoteRejection struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteRejection) Error() string {
	return e.Message
}

// TransportFailure fallo de red o de decodificación al hablar con el servicio.
type TransportFailure struct {
	Op  string
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportFailure) Unwrap() error {
	return e.Err
}

// Errores de uso del núcleo.
var (
	ErrNoSession     = errors.New("no hay ninguna edición activa")
	ErrUnknownRecord = errors.New("el registro no está en la lista actual")
	ErrUnknownField  = errors.New("campo desconocido")
	ErrNotConfirmed  = errors.New("eliminación no confirmada")
	ErrNoFile        = errors.New("no se seleccionó ningún archivo")
)

// IsValidation indica si err es un error de validación local.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
