package editor

import "sync"

// FetchToken identifica una petición de instantánea. Los tokens crecen monotónicamente.
type FetchToken uint64

// RecordStore guarda la última instantánea recibida del servicio.
//
// Solo se reemplaza completa con Apply. Si dos lecturas se solapan, gana la pedida más tarde:
// una respuesta con token anterior al último aplicado se descarta.
type RecordStore struct {
	mu      sync.RWMutex
	records []Record
	issued  FetchToken
	applied FetchToken
}

// NewRecordStore crea un almacén vacío.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// Snapshot devuelve una copia de la secuencia actual, en el orden del servicio.
func (s *RecordStore) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Find busca un registro por ID en la instantánea.
func (s *RecordStore) Find(id int64) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// BeginFetch reserva un token para una lectura que está por salir.
func (s *RecordStore) BeginFetch() FetchToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Apply reemplaza la instantánea si tok es más reciente que el último aplicado. Devuelve false si se descartó.
func (s *RecordStore) Apply(tok FetchToken, records []Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok <= s.applied {
		return false
	}
	s.applied = tok
	s.records = make([]Record, len(records))
	copy(s.records, records)
	return true
}

// Remove quita un registro cuya baja ya confirmó el servicio, a la espera de la siguiente lectura.
// Invalida las lecturas en vuelo: se pidieron antes de la baja y podrían resucitar el registro.
func (s *RecordStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.issued
	kept := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
}
