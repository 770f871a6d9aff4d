// seed genera un script SQL para poblar productos y lotes a partir del
// export CSV del sistema de escritorio anterior (separado por ';' y
// codificado en Windows-1252, fechas DD/MM/AAAA).
//
// Columnas esperadas: sku;nombre;lote;vencimiento;cantidad;costo
//
// Uso: go run ./cmd/seed <company_id> [ruta/inventario.csv]
// Por defecto busca inventario.csv en el directorio actual.
// Escribe: seed_inventario.sql en la raíz del módulo.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type lotRow struct {
	sku        string
	name       string
	lotNumber  string
	expiration time.Time
	quantity   decimal.Decimal
	cost       decimal.Decimal
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <company_id> [inventario.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "inventario.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El sistema anterior exporta en Windows-1252; los nombres con tildes y ñ
	// llegan rotos si se lee como UTF-8.
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []lotRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue // cabecera
		}
		row, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: %v (omitida)\n", i+1, err)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene filas válidas")
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "seed_inventario.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	products := writeSQL(out, companyID, rows)
	fmt.Printf("Generado %s: %d productos, %d lotes\n", outPath, products, len(rows))
}

func parseRow(rec []string) (lotRow, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	exp, err := time.Parse("02/01/2006", rec[3])
	if err != nil {
		return lotRow{}, fmt.Errorf("vencimiento %q: %w", rec[3], err)
	}
	qty, err := decimal.NewFromString(strings.ReplaceAll(rec[4], ",", "."))
	if err != nil || qty.IsNegative() {
		return lotRow{}, fmt.Errorf("cantidad %q inválida", rec[4])
	}
	cost, err := decimal.NewFromString(strings.ReplaceAll(rec[5], ",", "."))
	if err != nil || cost.IsNegative() {
		return lotRow{}, fmt.Errorf("costo %q inválido", rec[5])
	}
	if rec[0] == "" || rec[1] == "" || rec[2] == "" {
		return lotRow{}, fmt.Errorf("sku, nombre y lote son requeridos")
	}
	return lotRow{
		sku:        rec[0],
		name:       rec[1],
		lotNumber:  rec[2],
		expiration: exp,
		quantity:   qty,
		cost:       cost,
	}, nil
}

// writeSQL escribe los INSERT de productos (uno por SKU) y de lotes con su
// movimiento RECEIVE inicial. Devuelve la cantidad de productos distintos.
func writeSQL(out *os.File, companyID string, rows []lotRow) int {
	out.WriteString("-- Inventario inicial importado del sistema anterior\n")
	fmt.Fprintf(out, "-- Empresa: %s, generado: %s\n\n", companyID, time.Now().Format("2006-01-02"))

	productIDs := make(map[string]string)
	for _, row := range rows {
		if _, ok := productIDs[row.sku]; ok {
			continue
		}
		id := uuid.New().String()
		productIDs[row.sku] = id
		fmt.Fprintf(out,
			"INSERT INTO products (id, company_id, sku, name, unit_cost, unit_measure)\nVALUES ('%s', '%s', '%s', '%s', %s, 'unidad')\nON CONFLICT (company_id, sku) DO NOTHING;\n\n",
			id, companyID, escapeSQL(row.sku), escapeSQL(row.name), row.cost.StringFixed(4))
	}

	for _, row := range rows {
		lotID := uuid.New().String()
		productID := productIDs[row.sku]
		exp := row.expiration.Format("2006-01-02")
		fmt.Fprintf(out,
			"INSERT INTO lots (id, company_id, product_id, lot_number, expiration_date, received_qty, consumed_qty)\nVALUES ('%s', '%s', '%s', '%s', '%s', %s, 0)\nON CONFLICT (product_id, lot_number) DO NOTHING;\n",
			lotID, companyID, productID, escapeSQL(row.lotNumber), exp, row.quantity.StringFixed(4))
		fmt.Fprintf(out,
			"INSERT INTO lot_movements (id, transaction_id, lot_id, product_id, type, quantity, reference, date, created_by)\nVALUES ('%s', '%s', '%s', '%s', 'RECEIVE', %s, 'importación inicial', now(), 'seed');\n\n",
			uuid.New().String(), uuid.New().String(), lotID, productID, row.quantity.StringFixed(4))
	}
	return len(productIDs)
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
			return dir
		}
		dir = parent
	}
}
