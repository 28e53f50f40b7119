package editor

import (
	"math"
	"strconv"
	"strings"
)

// MaxQuantity mayor cantidad que acepta el servicio (columna INTEGER).
const MaxQuantity = math.MaxInt32

// Candidate pareja (SKU, tienda) que se quiere escribir.
type Candidate struct {
	SKU   string
	Store string
}

// Violates indica si algún registro de records distinto de excludeID ya usa la pareja del candidato.
// excludeID es nil en altas y el ID editado en ediciones (un registro no choca consigo mismo).
func Violates(records []Record, c Candidate, excludeID *int64) bool {
	for _, r := range records {
		if r.SKU != c.SKU || r.Store != c.Store {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		return true
	}
	return false
}

// Violates aplica la comprobación de unicidad sobre la instantánea actual.
// Es orientativa: el servicio puede tener datos más nuevos y sigue siendo la autoridad final.
func (s *RecordStore) Violates(c Candidate, excludeID *int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Violates(s.records, c, excludeID)
}

// Fields valores tal como los escribe el usuario.
type Fields struct {
	Quantity    string
	SKU         string
	Description string
	Store       string
}

// parseFields valida los campos y los convierte. SKU y tienda se recortan; descripción vacía es nula.
func parseFields(f Fields) (NewRecord, error) {
	sku := strings.TrimSpace(f.SKU)
	if sku == "" {
		return NewRecord{}, &ValidationError{Kind: MissingField, Field: string(FieldSKU)}
	}
	store := strings.TrimSpace(f.Store)
	if store == "" {
		return NewRecord{}, &ValidationError{Kind: MissingField, Field: string(FieldStore)}
	}
	qty, err := parseQuantity(f.Quantity)
	if err != nil {
		return NewRecord{}, err
	}
	out := NewRecord{Quantity: qty, SKU: sku, Store: store}
	if d := strings.TrimSpace(f.Description); d != "" {
		out.Description = &d
	}
	return out, nil
}

func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Kind: MissingField, Field: string(FieldQuantity)}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxQuantity {
		return 0, &ValidationError{Kind: InvalidQuantity, Field: string(FieldQuantity)}
	}
	return n, nil
}
