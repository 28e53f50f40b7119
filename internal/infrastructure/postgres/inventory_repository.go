package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-tiendas/internal/domain"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de persistencia. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const selectInventory = `SELECT id, sku, store, quantity, description, created_at, updated_at FROM inventories`

// Create persiste un registro nuevo y asigna su ID.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventories (sku, store, quantity, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		inv.SKU, inv.Store, inv.Quantity, inv.Description, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return mapWriteError("insert inventory", err)
	}
	return nil
}

// CreateIfAbsent inserta salvo conflicto (sku, store); reporta si insertó.
func (r *InventoryRepo) CreateIfAbsent(ctx context.Context, inv *entity.Inventory) (bool, error) {
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventories (sku, store, quantity, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (sku, store) DO NOTHING RETURNING id`,
		inv.SKU, inv.Store, inv.Quantity, inv.Description, inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapWriteError("insert inventory", err)
	}
	return true, nil
}

// GetByID obtiene un registro por ID; nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, selectInventory+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// Update sobrescribe los campos editables del registro.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventories SET sku = $2, store = $3, quantity = $4, description = $5, updated_at = $6 WHERE id = $1`,
		inv.ID, inv.SKU, inv.Store, inv.Quantity, inv.Description, inv.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update inventory", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los registros ordenados por ID.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, selectInventory+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete elimina un registro; domain.ErrNotFound si no existía.
func (r *InventoryRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := row.Scan(&inv.ID, &inv.SKU, &inv.Store, &inv.Quantity, &inv.Description, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
