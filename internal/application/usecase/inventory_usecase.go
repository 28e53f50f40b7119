package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/Inventario-tiendas/internal/domain"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
)

// InventoryUseCase casos de uso CRUD para registros de inventario por tienda.
// La unicidad (SKU, tienda) la garantiza el repositorio (constraint único), no una consulta previa.
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// List devuelve todos los registros ordenados por ID.
func (uc *InventoryUseCase) List(ctx context.Context) ([]dto.InventoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInventoryResponse(inv))
	}
	return items, nil
}

// Create crea un registro. Devuelve domain.ErrInvalidInput o domain.ErrDuplicate.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	now := time.Now()
	inv := &entity.Inventory{
		SKU:         strings.TrimSpace(in.SKU),
		Store:       strings.TrimSpace(in.Store),
		Quantity:    in.Quantity,
		Description: normalizeDescription(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !inv.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Update aplica una actualización parcial. Devuelve domain.ErrNotFound si el ID no existe.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil {
		inv.Quantity = *in.Quantity
	}
	if in.SKU != nil {
		inv.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Store != nil {
		inv.Store = strings.TrimSpace(*in.Store)
	}
	if in.Description != nil {
		inv.Description = normalizeDescription(in.Description)
	}
	if !inv.Valid() {
		return nil, domain.ErrInvalidInput
	}
	inv.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Delete elimina un registro por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *InventoryUseCase) Delete(ctx context.Context, id int64) (*dto.DeleteInventoryResponse, error) {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeleteInventoryResponse{ID: id}, nil
}

// normalizeDescription guarda la descripción vacía como NULL.
func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	v := strings.TrimSpace(*d)
	if v == "" {
		return nil
	}
	return &v
}

func toInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	if inv == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:          inv.ID,
		Quantity:    inv.Quantity,
		SKU:         inv.SKU,
		Description: inv.Description,
		Store:       inv.Store,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}
