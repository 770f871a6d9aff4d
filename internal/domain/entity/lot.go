package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de vencimiento de un lote. No se almacenan: se derivan de la fecha
// de vencimiento y de la fecha actual en cada lectura.
const (
	LotStatusOK           = "OK"
	LotStatusExpiringSoon = "POR_VENCER"
	LotStatusExpired      = "VENCIDO"
)

// Lot representa un lote fechado de stock de un producto, con su propio ledger
// de movimientos. ReceivedQty y ConsumedQty se materializan en la misma
// transacción que el movimiento; lot_movements sigue siendo la fuente de verdad
// y las columnas pueden reconstruirse plegando el historial.
//
// Invariante: 0 <= ConsumedQty <= ReceivedQty en todo momento.
type Lot struct {
	ID             string
	CompanyID      string
	ProductID      string
	LotNumber      string
	ExpirationDate time.Time
	ReceivedQty    decimal.Decimal
	ConsumedQty    decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Remaining devuelve la cantidad disponible del lote.
func (l *Lot) Remaining() decimal.Decimal {
	return l.ReceivedQty.Sub(l.ConsumedQty)
}
