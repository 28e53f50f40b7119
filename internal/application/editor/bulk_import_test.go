package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-tiendas/internal/application/editor"
)

func TestImportFile_ReportaConteoDelServicio(t *testing.T) {
	remote := seed()
	remote.importCount = 7
	e := newEditor(t, remote)
	gets := remote.count("get")

	// El contenido tiene dos filas; el mensaje usa el conteo del servicio, sin recontar.
	payload := &editor.FilePayload{Name: "inventario.csv", Data: []byte("quantity,sku,store\n1,A,S\n2,B,S\n")}
	res, err := e.ImportFile(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, 7, res.Count)
	assert.Equal(t, "Se importaron 7 artículos", editor.ImportMessage(res, err))
	assert.Equal(t, 1, remote.count("import"))
	assert.Equal(t, "inventario.csv", remote.lastUpload.Name)
	assert.Equal(t, gets, remote.count("get"), "la importación no refresca la lista")
}

func TestImportFile_SinArchivoEsNoOp(t *testing.T) {
	remote := seed()
	e := newEditor(t, remote)

	_, err := e.ImportFile(context.Background(), nil)
	assert.ErrorIs(t, err, editor.ErrNoFile)
	_, err = e.ImportFile(context.Background(), &editor.FilePayload{})
	assert.ErrorIs(t, err, editor.ErrNoFile)
	assert.Zero(t, remote.count("import"))
}

func TestImportFile_FalloMensajeGenerico(t *testing.T) {
	for name, failure := range map[string]error{
		"transporte": &editor.TransportFailure{Op: "upload", Err: errors.New("reset by peer")},
		"rechazo":    &editor.RemoteRejection{Status: 400, Code: "MISSING_COLUMN", Message: "falta sku"},
	} {
		t.Run(name, func(t *testing.T) {
			remote := seed()
			remote.importErr = failure
			e := newEditor(t, remote)

			res, err := e.ImportFile(context.Background(), &editor.FilePayload{Name: "x.csv", Data: []byte("x")})
			require.Error(t, err)
			assert.Equal(t, "Error al subir el archivo", editor.ImportMessage(res, err))
		})
	}
}
