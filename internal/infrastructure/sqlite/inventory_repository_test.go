package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-tiendas/internal/domain"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/Inventario-tiendas/internal/infrastructure/sqlite"
)

func newInventory(sku, store string, qty int) *entity.Inventory {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Inventory{SKU: sku, Store: store, Quantity: qty, CreatedAt: now, UpdatedAt: now}
}

func TestInventoryRepo_CreateYGet(t *testing.T) {
	repo := sqlite.NewInventoryRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	desc := "Taladro percutor"
	inv := newInventory("X100", "NYC", 4)
	inv.Description = &desc
	require.NoError(t, repo.Create(ctx, inv))
	require.NotZero(t, inv.ID)

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "X100", got.SKU)
	assert.Equal(t, "NYC", got.Store)
	assert.Equal(t, 4, got.Quantity)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
}

func TestInventoryRepo_DescripcionNula(t *testing.T) {
	repo := sqlite.NewInventoryRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	inv := newInventory("X100", "NYC", 0)
	require.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestInventoryRepo_CreateDuplicado(t *testing.T) {
	repo := sqlite.NewInventoryRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newInventory("X100", "NYC", 1)))
	err := repo.Create(ctx, newInventory("X100", "NYC", 2))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Mismo SKU en otra tienda sí es válido.
	assert.NoError(t, repo.Create(ctx, newInventory("X100", "LA", 2)))
}

func TestInventoryRepo_UpdateDuplicadoYNoEncontrado(t *testing.T) {
	repo := sqlite.NewInventoryRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	a := newInventory("X100", "NYC", 1)
	b := newInventory("X200", "NYC", 1)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	b.SKU = "X100"
	assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrDuplicate)

	ghost := newInventory("Z", "Z", 1)
	ghost.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrNotFound)
}

func TestInventoryRepo_ListOrdenadoYDelete(t *testing.T) {
	repo := sqlite.NewInventoryRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	for _, sku := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(ctx, newInventory(sku, "NYC", 1)))
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].SKU)
	assert.Equal(t, "C", list[2].SKU)

	require.NoError(t, repo.Delete(ctx, list[1].ID))
	assert.ErrorIs(t, repo.Delete(ctx, list[1].ID), domain.ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestInventoryRepo_CreateIfAbsent(t *testing.T) {
	repo := sqlite.NewInventoryRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateIfAbsent(ctx, newInventory("X100", "NYC", 1))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, newInventory("X100", "NYC", 9))
	require.NoError(t, err)
	assert.False(t, created, "la pareja ya existía")
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	db := sqlite.NewTestDB(t)
	runner := sqlite.NewTxRunner(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.RunInventory(ctx, func(repo repository.InventoryRepository) error {
		if err := repo.Create(ctx, newInventory("X100", "NYC", 1)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := sqlite.NewInventoryRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "la transacción debe revertirse")
}
