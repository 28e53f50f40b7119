// seed_inventory genera un script SQL idempotente para cargar inventario desde un CSV
// (cabecera quantity, sku, store y description opcional).
//
// Uso: go run ./cmd/seed_inventory [-charset latin1] [-out ruta.sql] inventario.csv
// Por defecto escribe internal/infrastructure/postgres/migrations/100_seed_inventory.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Inventario-tiendas/internal/application/csvimport"
	"github.com/jhoicas/Inventario-tiendas/internal/domain/entity"
)

func main() {
	charset := flag.String("charset", "", "codificación del CSV: utf-8 (defecto) o latin1")
	outFlag := flag.String("out", "", "ruta del script SQL de salida")
	flag.Parse()

	csvPath := "inventario.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	records, skipped, err := csvimport.ReadRecords(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "100_seed_inventory.sql")
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
			os.Exit(1)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, filepath.Base(csvPath), records); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros, %d filas omitidas\n", outPath, len(records), skipped)
}

// writeSeed escribe un único INSERT multi-fila; volver a ejecutarlo actualiza cantidad y descripción.
func writeSeed(w io.Writer, source string, records []*entity.Inventory) error {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Inventario por tienda\n-- Generado desde %s\n\n", source)
	if len(records) == 0 {
		b.WriteString("-- (sin registros válidos)\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO inventories (sku, store, quantity, description) VALUES\n")
	for i, r := range records {
		desc := "NULL"
		if r.Description != nil {
			desc = "'" + escapeSQL(*r.Description) + "'"
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %d, %s)", escapeSQL(r.SKU), escapeSQL(r.Store), r.Quantity, desc)
		if i < len(records)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (sku, store) DO UPDATE SET\n")
	b.WriteString("  quantity = EXCLUDED.quantity,\n")
	b.WriteString("  description = EXCLUDED.description,\n")
	b.WriteString("  updated_at = NOW();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
