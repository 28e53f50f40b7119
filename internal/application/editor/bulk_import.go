package editor

import (
	"context"

	"github.com/jhoicas/Inventario-tiendas/pkg/logger"
)

// Importer envía un archivo CSV al servicio en una sola petición y devuelve el conteo que informe.
// No valida el CSV ni refresca el RecordStore: la lista se refresca aparte.
type Importer struct {
	uploader Uploader
	log      *logger.Logger
}

// NewImporter construye el pipeline de importación.
func NewImporter(uploader Uploader, log *logger.Logger) *Importer {
	return &Importer{uploader: uploader, log: log.Named("import")}
}

// Import sube payload. Sin archivo es un no-op que devuelve ErrNoFile sin petición.
func (i *Importer) Import(ctx context.Context, payload *FilePayload) (ImportResult, error) {
	if payload == nil || (payload.Name == "" && len(payload.Data) == 0) {
		return ImportResult{}, ErrNoFile
	}
	res, err := i.uploader.ImportCSV(context.WithoutCancel(ctx), *payload)
	if err != nil {
		i.log.Error().Err(err).Str("file", payload.Name).Msg("importación fallida")
		return ImportResult{}, err
	}
	i.log.Info().Str("file", payload.Name).Int("count", res.Count).Msg("importación completada")
	return res, nil
}
