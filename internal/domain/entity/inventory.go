package entity

import (
	"math"
	"time"
)

// Inventory representa un registro de inventario identificado por la pareja (SKU, tienda).
// La pareja (SKU, Store) es única en todo el sistema; ID lo asigna la base de datos.
type Inventory struct {
	ID          int64
	SKU         string
	Store       string
	Quantity    int
	Description *string // nullable
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key devuelve la clave natural (SKU, tienda) del registro.
func (i *Inventory) Key() InventoryKey {
	return InventoryKey{SKU: i.SKU, Store: i.Store}
}

// InventoryKey clave natural de un registro de inventario.
type InventoryKey struct {
	SKU   string
	Store string
}

// MaxQuantity mayor cantidad que admite la columna quantity (INTEGER).
const MaxQuantity = math.MaxInt32

// Valid indica si el registro cumple las reglas mínimas de integridad.
func (i *Inventory) Valid() bool {
	return i.SKU != "" && i.Store != "" && i.Quantity >= 0 && i.Quantity <= MaxQuantity
}
