package editor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newEditor(t *testing.T, remote *fakeRemote) *editor.Editor {
	t.Helper()
	e := editor.New(remote, remote, logger.Nop())
	require.NoError(t, e.Refresh(context.Background()))
	return e
}

func seed() *fakeRemote {
	return newFakeRemote(
		editor.Record{ID: 5, SKU: "X100", Store: "NYC", Quantity: 3},
		editor.Record{ID: 6, SKU: "X200", Store: "NYC", Quantity: 1, Description: strPtr("tornillos")},
	)
}

func assertUniquePairs(t *testing.T, records []editor.Record) {
	t.Helper()
	seen := map[editor.Candidate]bool{}
	for _, r := range records {
		c := editor.Candidate{SKU: r.SKU, Store: r.Store}
		assert.False(t, seen[c], "pareja repetida %v", c)
		seen[c] = true
	}
}

func always(editor.Record) bool { return true }

var errNetwork = &editor.TransportFailure{Op: "get", Err: errors.New("connection refused")}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DuplicadoFallaSinLlamadaDeRed(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)
	before := remote.networkCalls()

	form := editor.Fields{Quantity: "1", SKU: "X100", Store: "NYC"}
	err := e.CreateRecord(context.Background(), &form)

	assert.ErrorIs(t, err, editor.ErrDuplicateKey)
	assert.Equal(t, before, remote.networkCalls(), "no debe haber ninguna petición")
	assert.Equal(t, "X100", form.SKU, "el formulario se conserva")
}

func TestCreate_ExitoVaciaFormularioYRefresca(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	form := editor.Fields{Quantity: "4", SKU: "X300", Store: "NYC", Description: "  "}
	require.NoError(t, e.CreateRecord(context.Background(), &form))

	assert.Equal(t, editor.Fields{}, form)
	assert.Equal(t, 1, remote.count("create"))
	assert.Equal(t, 2, remote.count("get"), "lectura inicial + refresco tras el alta")

	list := e.ListRecords()
	require.Len(t, list, 3)
	assert.Equal(t, "X300", list[2].SKU)
	assert.Nil(t, list[2].Description, "descripción vacía se envía como nula")
	assertUniquePairs(t, list)
}

func TestCreate_ValidacionLocal(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	cases := []struct {
		name string
		form editor.Fields
		want error
	}{
		{"cantidad negativa", editor.Fields{Quantity: "-1", SKU: "A", Store: "S"}, editor.ErrInvalidQuantity},
		{"cantidad no numérica", editor.Fields{Quantity: "diez", SKU: "A", Store: "S"}, editor.ErrInvalidQuantity},
		{"cantidad decimal", editor.Fields{Quantity: "1.5", SKU: "A", Store: "S"}, editor.ErrInvalidQuantity},
		{"sin sku", editor.Fields{Quantity: "1", SKU: " ", Store: "S"}, editor.ErrMissingField},
		{"sin tienda", editor.Fields{Quantity: "1", SKU: "A"}, editor.ErrMissingField},
		{"sin cantidad", editor.Fields{SKU: "A", Store: "S"}, editor.ErrMissingField},
		{"cantidad fuera de rango", editor.Fields{Quantity: "9999999999999", SKU: "A", Store: "S"}, editor.ErrInvalidQuantity},
		{"cantidad sobre el máximo", editor.Fields{Quantity: "2147483648", SKU: "A", Store: "S"}, editor.ErrInvalidQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := tc.form
			err := e.CreateRecord(context.Background(), &form)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, editor.IsValidation(err))
		})
	}
	assert.Zero(t, remote.count("create"))
}

func TestCreate_CantidadMaximaSeAcepta(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	form := editor.Fields{Quantity: "2147483647", SKU: "X300", Store: "NYC"}
	require.NoError(t, e.CreateRecord(context.Background(), &form))
	assert.Equal(t, 1, remote.count("create"))
}

func TestCreate_FormularioNilNoEntraEnPanico(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	var err error
	assert.NotPanics(t, func() { err = e.CreateRecord(context.Background(), nil) })
	assert.ErrorIs(t, err, editor.ErrMissingField)
	assert.Zero(t, remote.count("create"))
}

func TestCreate_RechazoRemotoConservaFormulario(t *testing.T) {
	remote := seed()
	remote.createErr = &editor.RemoteRejection{Status: 409, Code: "DUPLICATE", Message: "ya existe un registro con ese SKU en la tienda indicada"}
	e := newEditor(t, remote)
	before := e.ListRecords()

	form := editor.Fields{Quantity: "1", SKU: "X900", Store: "NYC"}
	err := e.CreateRecord(context.Background(), &form)

	var rr *editor.RemoteRejection
	require.ErrorAs(t, err, &rr)
	assert.Equal(t, "No se pudo agregar el artículo: ya existe un registro con ese SKU en la tienda indicada", editor.CreateFailedMessage(err))
	assert.Equal(t, "X900", form.SKU)
	assert.Equal(t, before, e.ListRecords(), "la instantánea queda intacta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitEdit_SinCambiosSeExcluyeASiMismo(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	require.NoError(t, e.BeginEdit(5))
	require.NoError(t, e.CommitEdit(context.Background()))

	assert.Equal(t, 1, remote.count("update"))
	assert.IsType(t, editor.Idle{}, e.Session())
}

func TestCommitEdit_EnviaTodosLosCamposDelBorrador(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	require.NoError(t, e.BeginEdit(6))
	require.NoError(t, e.UpdateDraftField(editor.FieldQuantity, "12"))
	require.NoError(t, e.UpdateDraftField(editor.FieldDescription, ""))
	require.NoError(t, e.CommitEdit(context.Background()))

	p := remote.lastPatch
	require.NotNil(t, p.Quantity)
	assert.Equal(t, 12, *p.Quantity)
	assert.Equal(t, "X200", *p.SKU)
	assert.Equal(t, "NYC", *p.Store)
	assert.Equal(t, "", *p.Description)

	rec, ok := findRecord(e.ListRecords(), 6)
	require.True(t, ok)
	assert.Equal(t, 12, rec.Quantity, "se refresca tras confirmar")
	assert.Nil(t, rec.Description)
}

func TestCommitEdit_CantidadNegativaSeRechazaLocalmente(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	require.NoError(t, e.BeginEdit(5))
	require.NoError(t, e.UpdateDraftField(editor.FieldQuantity, "-1"))
	err := e.CommitEdit(context.Background())

	assert.ErrorIs(t, err, editor.ErrInvalidQuantity)
	assert.Zero(t, remote.count("update"))
	ed, ok := e.Session().(editor.Editing)
	require.True(t, ok, "la sesión sigue abierta")
	assert.ErrorIs(t, ed.Err, editor.ErrInvalidQuantity)
}

func TestCommitEdit_DuplicadoQuedaEnSesion(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	require.NoError(t, e.BeginEdit(6))
	require.NoError(t, e.UpdateDraftField(editor.FieldSKU, "X100"))
	err := e.CommitEdit(context.Background())

	assert.ErrorIs(t, err, editor.ErrDuplicateKey)
	assert.Zero(t, remote.count("update"))
	ed, ok := e.Session().(editor.Editing)
	require.True(t, ok)
	assert.ErrorIs(t, ed.Err, editor.ErrDuplicateKey)
	assert.Equal(t, "X100", ed.Draft.SKU, "el borrador se conserva para corregirlo")
}

func TestCommitEdit_RechazoRemotoMantieneSesion(t *testing.T) {
	remote := seed()
	remote.updateErr = &editor.RemoteRejection{Status: 409, Code: "DUPLICATE", Message: "duplicado en el servidor"}
	e := newEditor(t, remote)
	before := e.ListRecords()

	require.NoError(t, e.BeginEdit(5))
	require.NoError(t, e.UpdateDraftField(editor.FieldStore, "LA"))
	err := e.CommitEdit(context.Background())

	require.Error(t, err)
	assert.Equal(t, "duplicado en el servidor", editor.UserMessage(err))
	ed, ok := e.Session().(editor.Editing)
	require.True(t, ok)
	assert.Equal(t, err, ed.Err)
	assert.Equal(t, before, e.ListRecords())
}

func TestCommitEdit_SinSesion(t *testing.T) {
	e := newEditor(t, seed())
	assert.ErrorIs(t, e.CommitEdit(context.Background()), editor.ErrNoSession)
}

func TestBeginEdit_RegistroDesconocido(t *testing.T) {
	e := newEditor(t, seed())
	assert.ErrorIs(t, e.BeginEdit(999), editor.ErrUnknownRecord)
}

func TestCancelEdit_NoTocaRedNiInstantanea(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)
	before := e.ListRecords()
	calls := remote.networkCalls()

	require.NoError(t, e.BeginEdit(5))
	require.NoError(t, e.UpdateDraftField(editor.FieldSKU, "otro"))
	assert.True(t, e.CancelEdit())

	assert.Equal(t, calls, remote.networkCalls())
	assert.Equal(t, before, e.ListRecords())
	assert.IsType(t, editor.Idle{}, e.Session())
}

func TestCommitEdit_RespuestaTardiaNoCierraSesionNueva(t *testing.T) {
	remote := seed()
	remote.updateGate = make(chan struct{})
	remote.updateStarted = make(chan struct{}, 1)
	e := newEditor(t, remote)

	require.NoError(t, e.BeginEdit(5))
	done := make(chan error, 1)
	go func() { done <- e.CommitEdit(context.Background()) }()

	// Mientras la edición de 5 está en vuelo, el usuario pasa a editar 6.
	select {
	case <-remote.updateStarted:
	case <-time.After(time.Second):
		t.Fatal("la edición no llegó al servicio")
	}
	require.NoError(t, e.BeginEdit(6))
	close(remote.updateGate)

	require.NoError(t, <-done)
	ed, ok := e.Session().(editor.Editing)
	require.True(t, ok, "la sesión nueva no se cierra con la respuesta de la anterior")
	assert.EqualValues(t, 6, ed.TargetID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_SinConfirmacionNoHayPeticion(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	err := e.DeleteRecord(context.Background(), 5, func(editor.Record) bool { return false })
	assert.ErrorIs(t, err, editor.ErrNotConfirmed)
	assert.ErrorIs(t, e.DeleteRecord(context.Background(), 5, nil), editor.ErrNotConfirmed)
	assert.Zero(t, remote.count("delete"))
	assert.Len(t, e.ListRecords(), 2)
}

func TestDelete_ConConfirmacionUnaPeticionYDesapareceDeLaLista(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	var asked editor.Record
	require.NoError(t, e.DeleteRecord(context.Background(), 5, func(r editor.Record) bool {
		asked = r
		return true
	}))

	assert.Equal(t, "X100", asked.SKU, "se confirma sobre el registro visible")
	assert.Equal(t, 1, remote.count("delete"))
	_, ok := findRecord(e.ListRecords(), 5)
	assert.False(t, ok)
}

func TestDelete_FalloDejaRegistroVisible(t *testing.T) {
	remote := seed()
	remote.deleteErr = &editor.TransportFailure{Op: "delete", Err: errors.New("timeout")}
	e := newEditor(t, remote)

	err := e.DeleteRecord(context.Background(), 5, always)
	require.Error(t, err)
	_, ok := findRecord(e.ListRecords(), 5)
	assert.True(t, ok)

	// La interacción sigue disponible.
	require.NoError(t, e.BeginEdit(5))
}

func TestDelete_CierraSesionSobreElRegistroEliminado(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	require.NoError(t, e.BeginEdit(5))
	require.NoError(t, e.DeleteRecord(context.Background(), 5, always))
	assert.IsType(t, editor.Idle{}, e.Session())
}

func TestDelete_RefrescoFallidoNoResucitaRegistro(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)
	remote.mu.Lock()
	remote.getErr = errNetwork
	remote.mu.Unlock()

	require.NoError(t, e.DeleteRecord(context.Background(), 5, always))
	_, ok := findRecord(e.ListRecords(), 5)
	assert.False(t, ok, "se quita en local a la espera del refresco")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de unicidad tras una secuencia de escrituras
// ──────────────────────────────────────────────────────────────────────────────

func TestUnicidad_SeMantieneTrasAltasYEdiciones(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)
	ctx := context.Background()

	for _, f := range []editor.Fields{
		{Quantity: "1", SKU: "X100", Store: "LA"},
		{Quantity: "1", SKU: "X100", Store: "NYC"},
		{Quantity: "1", SKU: "X300", Store: "NYC"},
		{Quantity: "2", SKU: "X300", Store: "NYC"},
	} {
		form := f
		_ = e.CreateRecord(ctx, &form)
	}
	require.NoError(t, e.BeginEdit(6))
	require.NoError(t, e.UpdateDraftField(editor.FieldSKU, "X300"))
	_ = e.CommitEdit(ctx)

	assertUniquePairs(t, e.ListRecords())
	assert.Len(t, e.ListRecords(), 4)
}

func TestRefresh_FalloConservaInstantanea(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)
	remote.mu.Lock()
	remote.getErr = errNetwork
	remote.mu.Unlock()

	err := e.Refresh(context.Background())
	var tf *editor.TransportFailure
	require.ErrorAs(t, err, &tf)
	assert.Equal(t, "No se pudo contactar con el servicio. Inténtalo de nuevo.", editor.UserMessage(err))
	assert.Len(t, e.ListRecords(), 2)
}

func findRecord(list []editor.Record, id int64) (editor.Record, bool) {
	for _, r := range list {
		if r.ID == id {
			return r, true
		}
	}
	return editor.Record{}, false
}
