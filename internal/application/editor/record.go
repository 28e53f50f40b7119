package editor

import "context"

// Record registro de inventario tal como lo devuelve el servicio.
type Record struct {
	ID          int64
	SKU         string
	Store       string
	Quantity    int
	Description *string
}

// NewRecord campos para crear un registro (ya validados).
type NewRecord struct {
	Quantity    int
	SKU         string
	Description *string
	Store       string
}

// RecordPatch actualización parcial: los campos nil no se modifican en el servicio.
type RecordPatch struct {
	Quantity    *int
	SKU         *string
	Description *string
	Store       *string
}

// FilePayload archivo CSV seleccionado por el usuario.
type FilePayload struct {
	Name    string
	Data    []byte
	Charset string // opcional: "latin1" para ISO-8859-1
}

// ImportResult resultado agregado informado por el servicio.
type ImportResult struct {
	Count int
}

// RemoteService puerto de consultas/mutaciones contra el servicio de inventario.
type RemoteService interface {
	GetInventories(ctx context.Context) ([]Record, error)
	CreateInventory(ctx context.Context, in NewRecord) (Record, error)
	UpdateInventory(ctx context.Context, id int64, patch RecordPatch) (Record, error)
	DeleteInventory(ctx context.Context, id int64) (int64, error)
}

// Uploader puerto del canal de subida de archivos (fuera de la interfaz de consultas/mutaciones).
type Uploader interface {
	ImportCSV(ctx context.Context, payload FilePayload) (ImportResult, error)
}
