package repository

import (
	"context"

	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
// Create y Update devuelven domain.ErrDuplicate si la pareja (SKU, tienda) ya existe.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context) ([]*entity.Inventory, error)
	Delete(ctx context.Context, id int64) error
	// CreateIfAbsent inserta el registro salvo que la pareja (SKU, tienda) ya exista; reporta si insertó.
	CreateIfAbsent(ctx context.Context, inv *entity.Inventory) (bool, error)
}
