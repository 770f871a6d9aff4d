package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario. El stock no vive aquí:
// se lleva por lote (Lot) y se deriva de los movimientos del kardex.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	UnitCost    decimal.Decimal // costo unitario de referencia para valorar inventario
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
