package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/Inventario-tiendas/internal/domain"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// Querier abstrae *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InventoryRepo implementación de InventoryRepository sobre SQLite (usable con db o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const selectInventory = `SELECT id, sku, store, quantity, description, created_at, updated_at FROM inventories`

// Create persiste un registro nuevo y asigna su ID.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO inventories (sku, store, quantity, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.SKU, inv.Store, inv.Quantity, inv.Description, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert inventory id: %w", err)
	}
	inv.ID = id
	return nil
}

// CreateIfAbsent inserta salvo conflicto (sku, store); reporta si insertó.
func (r *InventoryRepo) CreateIfAbsent(ctx context.Context, inv *entity.Inventory) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO inventories (sku, store, quantity, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (sku, store) DO NOTHING`,
		inv.SKU, inv.Store, inv.Quantity, inv.Description, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert inventory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert inventory rows: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if id, err := res.LastInsertId(); err == nil {
		inv.ID = id
	}
	return true, nil
}

// GetByID obtiene un registro por ID; nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRowContext(ctx, selectInventory+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// Update sobrescribe los campos editables del registro.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE inventories SET sku = ?, store = ?, quantity = ?, description = ?, updated_at = ? WHERE id = ?`,
		inv.SKU, inv.Store, inv.Quantity, inv.Description, inv.UpdatedAt, inv.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los registros ordenados por ID.
func (r *InventoryRepo) List(ctx context.Context) ([]*entity.Inventory, error) {
	rows, err := r.q.QueryContext(ctx, selectInventory+` ORDER BY id`)
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
	res, err := r.q.ExecContext(ctx, `DELETE FROM inventories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInventory(s scanner) (*entity.Inventory, error) {
	var inv entity.Inventory
	var description sql.NullString
	if err := s.Scan(&inv.ID, &inv.SKU, &inv.Store, &inv.Quantity, &description, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		d := description.String
		inv.Description = &d
	}
	return &inv, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
