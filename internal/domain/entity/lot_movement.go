package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex por lotes.
const (
	LotMovementReceive  = "RECEIVE"   // recepción: suma cantidad al lote
	LotMovementConsume  = "CONSUME"   // consumo: resta cantidad (venta, producción)
	LotMovementWriteOff = "WRITE_OFF" // baja explícita del remanente (vencidos, daños)
)

// LotMovement es una entrada inmutable del ledger de un lote. Append-only:
// las correcciones son movimientos nuevos, nunca ediciones.
// Quantity es positiva en RECEIVE y negativa en CONSUME/WRITE_OFF.
type LotMovement struct {
	ID            string
	TransactionID string // agrupa los movimientos de una misma operación (consumo FEFO multi-lote)
	LotID         string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	Reference     string // factura, orden, nota de baja
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string // UserID
}

// LotSnapshot es el corte mensual de un lote: los agregados derivados al cierre
// del período. A lo sumo un snapshot activo por (lote, período); con force el
// anterior queda marcado como superseded, nunca se reescribe en sitio.
type LotSnapshot struct {
	ID           string
	LotID        string
	Period       string // "YYYY-MM"
	ReceivedQty  decimal.Decimal
	ConsumedQty  decimal.Decimal
	RemainingQty decimal.Decimal
	CreatedAt    time.Time
	SupersededAt *time.Time
}
