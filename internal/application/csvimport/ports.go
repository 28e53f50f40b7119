package csvimport

import (
	"context"

	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un repositorio atado a esa tx.
// Una importación se confirma completa o no se confirma.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(repo repository.InventoryRepository) error) error
}
