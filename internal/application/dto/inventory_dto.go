package dto

import "time"

// CreateInventoryRequest entrada para crear un registro de inventario.
type CreateInventoryRequest struct {
	Quantity    int     `json:"quantity" validate:"min=0"`
	SKU         string  `json:"sku" validate:"required"`
	Description *string `json:"description"`
	Store       string  `json:"store" validate:"required"`
}

// UpdateInventoryRequest actualización parcial: los campos nil no se modifican.
type UpdateInventoryRequest struct {
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
	SKU         *string `json:"sku,omitempty"`
	Description *string `json:"description,omitempty"`
	Store       *string `json:"store,omitempty"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID          int64     `json:"id"`
	Quantity    int       `json:"quantity"`
	SKU         string    `json:"sku"`
	Description *string   `json:"description"`
	Store       string    `json:"store"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeleteInventoryResponse confirma el ID eliminado.
type DeleteInventoryResponse struct {
	ID int64 `json:"id"`
}

// ImportCSVResponse resultado agregado de una importación CSV.
type ImportCSVResponse struct {
	Count   int `json:"count"`
	Skipped int `json:"skipped"`
}
