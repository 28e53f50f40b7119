package editor

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// Orchestrator secuencia altas, ediciones y bajas contra el servicio y reconcilia el RecordStore
// volviendo a pedir la instantánea completa tras cada escritura confirmada.
//
// mu serializa las transiciones de estado; las llamadas remotas se hacen sin el lock para no
// bloquear la interfaz mientras están en vuelo. No hay reintentos automáticos.
type Orchestrator struct {
	remote  RemoteService
	store   *RecordStore
	session *EditSession
	log     *logger.Logger

	mu sync.Mutex
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(remote RemoteService, store *RecordStore, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		remote:  remote,
		store:   store,
		session: &EditSession{},
		log:     log.Named("editor"),
	}
}

// Refresh pide la instantánea completa y la aplica salvo que llegue una más nueva antes.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	tok := o.store.BeginFetch()
	records, err := o.remote.GetInventories(ctx)
	if err != nil {
		o.log.Error().Err(err).Uint64("token", uint64(tok)).Msg("no se pudo obtener el inventario")
		return err
	}
	if !o.store.Apply(tok, records) {
		o.log.Debug().Uint64("token", uint64(tok)).Msg("instantánea obsoleta descartada")
	}
	return nil
}

// Create valida los campos, comprueba la unicidad local y envía el alta.
// Si tiene éxito vacía form y refresca; si falla, form queda como estaba para reintentar.
// Un form nil equivale a un formulario vacío.
func (o *Orchestrator) Create(ctx context.Context, form *Fields) error {
	if form == nil {
		form = &Fields{}
	}
	in, err := parseFields(*form)
	if err != nil {
		return err
	}
	if o.store.Violates(Candidate{SKU: in.SKU, Store: in.Store}, nil) {
		return ErrDuplicateKey
	}

	created, err := o.remote.CreateInventory(context.WithoutCancel(ctx), in)
	if err != nil {
		o.log.Warn().Err(err).Str("sku", in.SKU).Str("store", in.Store).Msg("alta rechazada")
		return err
	}
	o.log.Info().Int64("id", created.ID).Str("sku", created.SKU).Str("store", created.Store).Msg("registro creado")

	*form = Fields{}
	o.refreshAfterWrite(ctx)
	return nil
}

// BeginEdit abre la sesión sobre el registro id de la instantánea actual.
func (o *Orchestrator) BeginEdit(id int64) error {
	rec, ok := o.store.Find(id)
	if !ok {
		return ErrUnknownRecord
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.session.Begin(rec)
	return nil
}

// UpdateDraftField cambia un campo del borrador activo.
func (o *Orchestrator) UpdateDraftField(f Field, value string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.SetField(f, value)
}

// CancelEdit descarta la sesión sin tocar la red ni el RecordStore.
func (o *Orchestrator) CancelEdit() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.Cancel()
}

// Session devuelve el estado de la sesión para las vistas.
func (o *Orchestrator) Session() SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.State()
}

// CommitEdit confirma el borrador activo.
//
// Errores de validación o de unicidad quedan en la sesión sin llamada de red. Si el servicio
// rechaza la edición, el error también queda en la sesión, que sigue abierta. Si entretanto el
// usuario empezó otra edición, la respuesta ya no afecta a la sesión nueva.
func (o *Orchestrator) CommitEdit(ctx context.Context) error {
	o.mu.Lock()
	ed, ok := o.session.Current()
	if !ok {
		o.mu.Unlock()
		return ErrNoSession
	}
	gen := o.session.generation()
	in, err := parseFields(ed.Draft.fields())
	if err == nil && o.store.Violates(Candidate{SKU: in.SKU, Store: in.Store}, &ed.TargetID) {
		err = ErrDuplicateKey
	}
	if err != nil {
		o.session.fail(gen, err)
		o.mu.Unlock()
		return err
	}
	o.mu.Unlock()

	// Se envía el valor actual de todos los campos del borrador; descripción vacía la borra.
	desc := ""
	if in.Description != nil {
		desc = *in.Description
	}
	patch := RecordPatch{Quantity: &in.Quantity, SKU: &in.SKU, Store: &in.Store, Description: &desc}

	_, err = o.remote.UpdateInventory(context.WithoutCancel(ctx), ed.TargetID, patch)

	o.mu.Lock()
	if err != nil {
		o.session.fail(gen, err)
		o.mu.Unlock()
		o.log.Warn().Err(err).Int64("id", ed.TargetID).Msg("edición rechazada")
		return err
	}
	o.session.finish(gen)
	o.mu.Unlock()

	o.log.Info().Int64("id", ed.TargetID).Msg("registro actualizado")
	o.refreshAfterWrite(ctx)
	return nil
}

// Confirm pide al usuario confirmar la baja de r.
type Confirm func(r Record) bool

// Delete elimina el registro id tras confirmación explícita. Sin confirmación no hay petición.
// Un fallo se registra y se devuelve; el registro sigue visible.
func (o *Orchestrator) Delete(ctx context.Context, id int64, confirm Confirm) error {
	rec, ok := o.store.Find(id)
	if !ok {
		return ErrUnknownRecord
	}
	if confirm == nil || !confirm(rec) {
		return ErrNotConfirmed
	}

	if _, err := o.remote.DeleteInventory(context.WithoutCancel(ctx), id); err != nil {
		o.log.Error().Err(err).Int64("id", id).Msg("baja fallida")
		return err
	}
	o.log.Info().Int64("id", id).Str("sku", rec.SKU).Str("store", rec.Store).Msg("registro eliminado")

	o.store.Remove(id)
	o.mu.Lock()
	o.session.discardTarget(id)
	o.mu.Unlock()

	o.refreshAfterWrite(ctx)
	return nil
}

// refreshAfterWrite refresca tras una escritura ya confirmada; un fallo aquí no deshace la escritura.
func (o *Orchestrator) refreshAfterWrite(ctx context.Context) {
	if err := o.Refresh(ctx); err != nil {
		o.log.Warn().Err(err).Msg("la lista puede estar desactualizada hasta el próximo refresco")
	}
}
