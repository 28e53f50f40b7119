package editor

import (
	"context"

	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// Editor fachada que expone a la capa de presentación las operaciones del núcleo.
type Editor struct {
	store    *RecordStore
	orch     *Orchestrator
	importer *Importer
}

// New arma el núcleo sobre los puertos remotos.
func New(remote RemoteService, uploader Uploader, log *logger.Logger) *Editor {
	store := NewRecordStore()
	return &Editor{
		store:    store,
		orch:     NewOrchestrator(remote, store, log),
		importer: NewImporter(uploader, log),
	}
}

// ListRecords devuelve la instantánea actual.
func (e *Editor) ListRecords() []Record { return e.store.Snapshot() }

// Refresh vuelve a pedir la lista al servicio.
func (e *Editor) Refresh(ctx context.Context) error { return e.orch.Refresh(ctx) }

// BeginEdit abre la edición del registro id.
func (e *Editor) BeginEdit(id int64) error { return e.orch.BeginEdit(id) }

// UpdateDraftField cambia un campo del borrador.
func (e *Editor) UpdateDraftField(f Field, value string) error {
	return e.orch.UpdateDraftField(f, value)
}

// CancelEdit descarta la edición activa.
func (e *Editor) CancelEdit() bool { return e.orch.CancelEdit() }

// CommitEdit confirma la edición activa.
func (e *Editor) CommitEdit(ctx context.Context) error { return e.orch.CommitEdit(ctx) }

// Session estado de la edición para las vistas.
func (e *Editor) Session() SessionState { return e.orch.Session() }

// CreateRecord da de alta form; lo vacía si el servicio confirma.
func (e *Editor) CreateRecord(ctx context.Context, form *Fields) error {
	return e.orch.Create(ctx, form)
}

// DeleteRecord elimina id tras confirm.
func (e *Editor) DeleteRecord(ctx context.Context, id int64, confirm Confirm) error {
	return e.orch.Delete(ctx, id, confirm)
}

// ImportFile sube un CSV. No refresca la lista.
func (e *Editor) ImportFile(ctx context.Context, payload *FilePayload) (ImportResult, error) {
	return e.importer.Import(ctx, payload)
}
