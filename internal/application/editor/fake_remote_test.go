package editor_test

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
)

// fakeRemote servicio en memoria con contadores de llamadas y errores inyectables.
type fakeRemote struct {
	mu      sync.Mutex
	records []editor.Record
	nextID  int64

	calls map[string]int

	getErr, createErr, updateErr, deleteErr, importErr error
	importCount                                        int
	lastPatch                                          editor.RecordPatch
	lastUpload                                         editor.FilePayload

	// updateGate, si no es nil, bloquea UpdateInventory hasta que se cierre.
	// updateStarted recibe una señal al entrar en UpdateInventory.
	updateGate    chan struct{}
	updateStarted chan struct{}
}

func newFakeRemote(records ...editor.Record) *fakeRemote {
	f := &fakeRemote{calls: make(map[string]int), nextID: 100}
	f.records = append(f.records, records...)
	return f
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRemote) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeRemote) GetInventories(ctx context.Context) ([]editor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["get"]++
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]editor.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRemote) CreateInventory(ctx context.Context, in editor.NewRecord) (editor.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.createErr != nil {
		return editor.Record{}, f.createErr
	}
	f.nextID++
	r := editor.Record{ID: f.nextID, SKU: in.SKU, Store: in.Store, Quantity: in.Quantity, Description: in.Description}
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeRemote) UpdateInventory(ctx context.Context, id int64, patch editor.RecordPatch) (editor.Record, error) {
	if f.updateStarted != nil {
		f.updateStarted <- struct{}{}
	}
	if f.updateGate != nil {
		<-f.updateGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	f.lastPatch = patch
	if f.updateErr != nil {
		return editor.Record{}, f.updateErr
	}
	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		r := &f.records[i]
		if patch.Quantity != nil {
			r.Quantity = *patch.Quantity
		}
		if patch.SKU != nil {
			r.SKU = *patch.SKU
		}
		if patch.Store != nil {
			r.Store = *patch.Store
		}
		if patch.Description != nil {
			if *patch.Description == "" {
				r.Description = nil
			} else {
				d := *patch.Description
				r.Description = &d
			}
		}
		return *r, nil
	}
	return editor.Record{}, &editor.RemoteRejection{Status: 404, Code: "NOT_FOUND", Message: "registro no encontrado"}
}

func (f *fakeRemote) DeleteInventory(ctx context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	kept := f.records[:0]
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return id, nil
}

func (f *fakeRemote) ImportCSV(ctx context.Context, payload editor.FilePayload) (editor.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["import"]++
	f.lastUpload = payload
	if f.importErr != nil {
		return editor.ImportResult{}, f.importErr
	}
	return editor.ImportResult{Count: f.importCount}, nil
}

func strPtr(s string) *string { return &s }
