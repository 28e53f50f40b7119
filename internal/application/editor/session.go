package editor

import (
	"strconv"
	"strings"
)

// Field campo editable de un registro.
type Field string

const (
	FieldQuantity    Field = "quantity"
	FieldSKU         Field = "sku"
	FieldDescription Field = "description"
	FieldStore       Field = "store"
)

// ParseField acepta el nombre del campo sin distinguir mayúsculas.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldQuantity, FieldSKU, FieldDescription, FieldStore:
		return f, nil
	default:
		return "", ErrUnknownField
	}
}

// Draft copia en curso de los campos de un registro. Quantity guarda el texto tal cual lo escribe
// el usuario; se valida al confirmar, no en cada cambio.
type Draft struct {
	ID          int64
	SKU         string
	Store       string
	Quantity    string
	Description string
}

func draftFrom(r Record) Draft {
	d := Draft{
		ID:       r.ID,
		SKU:      r.SKU,
		Store:    r.Store,
		Quantity: strconv.Itoa(r.Quantity),
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	return d
}

func (d Draft) fields() Fields {
	return Fields{Quantity: d.Quantity, SKU: d.SKU, Description: d.Description, Store: d.Store}
}

// SessionState estado de la sesión de edición: Idle o Editing.
type SessionState interface {
	sessionState()
}

// Idle no hay registro en edición.
type Idle struct{}

// Editing un registro en edición con su borrador y el último error de confirmación.
type Editing struct {
	TargetID int64
	Draft    Draft
	Err      error
}

func (Idle) sessionState()    {}
func (Editing) sessionState() {}

// EditSession máquina de estados de la edición en línea. Como mucho una sesión viva.
// No es segura para uso concurrente: Orchestrator serializa el acceso.
type EditSession struct {
	editing *Editing
	// gen cambia con cada Begin; una respuesta remota solo afecta a la sesión que la originó.
	gen uint64
}

// State devuelve una copia del estado actual.
func (s *EditSession) State() SessionState {
	if s.editing == nil {
		return Idle{}
	}
	return *s.editing
}

// Current devuelve la sesión activa, si la hay.
func (s *EditSession) Current() (Editing, bool) {
	if s.editing == nil {
		return Editing{}, false
	}
	return *s.editing, true
}

// Begin inicia la edición de r. Si ya había otra sesión, se descarta sin confirmación.
func (s *EditSession) Begin(r Record) {
	s.gen++
	s.editing = &Editing{TargetID: r.ID, Draft: draftFrom(r)}
}

// SetField cambia un campo del borrador sin validar.
func (s *EditSession) SetField(f Field, value string) error {
	if s.editing == nil {
		return ErrNoSession
	}
	d := &s.editing.Draft
	switch f {
	case FieldQuantity:
		d.Quantity = value
	case FieldSKU:
		d.SKU = value
	case FieldDescription:
		d.Description = value
	case FieldStore:
		d.Store = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Cancel descarta el borrador. Devuelve false si no había sesión.
func (s *EditSession) Cancel() bool {
	if s.editing == nil {
		return false
	}
	s.editing = nil
	return true
}

func (s *EditSession) generation() uint64 {
	return s.gen
}

// fail registra err en la sesión que originó la confirmación, si sigue activa.
func (s *EditSession) fail(gen uint64, err error) bool {
	if s.editing == nil || s.gen != gen {
		return false
	}
	s.editing.Err = err
	return true
}

// finish cierra la sesión que originó la confirmación, si sigue activa.
func (s *EditSession) finish(gen uint64) bool {
	if s.editing == nil || s.gen != gen {
		return false
	}
	s.editing = nil
	return true
}

// discardTarget cierra la sesión si edita id (el registro ya no existe).
func (s *EditSession) discardTarget(id int64) {
	if s.editing != nil && s.editing.TargetID == id {
		s.editing = nil
	}
}
