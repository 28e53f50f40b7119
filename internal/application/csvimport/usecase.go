package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/Inventario-tiendas/internal/domain"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/repository"
)

// Columnas reconocidas en la cabecera (sin distinguir mayúsculas).
const (
	colQuantity    = "quantity"
	colSKU         = "sku"
	colDescription = "description"
	colStore       = "store"
)

// ImportCSVUseCase importa registros de inventario desde un CSV con cabecera.
type ImportCSVUseCase struct {
	tx TxRunner
}

// NewImportCSVUseCase construye el caso de uso.
func NewImportCSVUseCase(tx TxRunner) *ImportCSVUseCase {
	return &ImportCSVUseCase{tx: tx}
}

// Import lee el CSV completo y crea los registros válidos en una sola transacción.
//
// Reglas:
//   - La cabecera debe tener quantity, sku y store; description es opcional. Si falta una
//     columna obligatoria se rechaza el lote completo (domain.ErrMissingColumn).
//   - Se omiten filas con sku/store vacíos, cantidad no entera o negativa, y parejas (sku, store)
//     ya existentes en la BD o repetidas dentro del mismo archivo.
//
// charset "latin1" (o "iso-8859-1") decodifica ISO-8859-1; cualquier otro valor asume UTF-8 con BOM opcional.
func (uc *ImportCSVUseCase) Import(ctx context.Context, r io.Reader, charset string) (*dto.ImportCSVResponse, error) {
	records, skipped, err := ReadRecords(r, charset)
	if err != nil {
		return nil, err
	}

	out := &dto.ImportCSVResponse{Skipped: skipped}
	err = uc.tx.RunInventory(ctx, func(repo repository.InventoryRepository) error {
		now := time.Now()
		for _, inv := range records {
			inv.CreatedAt, inv.UpdatedAt = now, now
			created, err := repo.CreateIfAbsent(ctx, inv)
			if err != nil {
				return err
			}
			if !created {
				out.Skipped++
				continue
			}
			out.Count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadRecords decodifica el CSV completo y devuelve los registros válidos en orden de aparición,
// sin parejas (sku, store) repetidas. skipped cuenta las filas descartadas.
func ReadRecords(r io.Reader, charset string) (records []*entity.Inventory, skipped int, err error) {
	reader := csv.NewReader(decodeReader(r, charset))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, domain.ErrEmptyFile
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: cabecera ilegible: %v", domain.ErrInvalidInput, err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[entity.InventoryKey]struct{})
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		inv, ok := parseRow(row, idx)
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[inv.Key()]; dup {
			skipped++
			continue
		}
		seen[inv.Key()] = struct{}{}
		records = append(records, inv)
	}
	return records, skipped, nil
}

func decodeReader(r io.Reader, charset string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		// Excel suele anteponer BOM a los CSV UTF-8.
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	for _, required := range []string{colQuantity, colSKU, colStore} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, required)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (*entity.Inventory, bool) {
	cell := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	qty, err := strconv.Atoi(cell(colQuantity))
	if err != nil {
		return nil, false
	}
	inv := &entity.Inventory{
		SKU:      cell(colSKU),
		Store:    cell(colStore),
		Quantity: qty,
	}
	if d := cell(colDescription); d != "" {
		inv.Description = &d
	}
	if !inv.Valid() {
		return nil, false
	}
	return inv, true
}
