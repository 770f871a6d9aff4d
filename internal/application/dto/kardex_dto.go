package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=50"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReceiveLotRequest body para POST /api/kardex/lots: recepción en un lote
// nuevo o existente (mismo product_id + lot_number).
type ReceiveLotRequest struct {
	ProductID      string           `json:"product_id" validate:"required,uuid"`
	LotNumber      string           `json:"lot_number" validate:"required,min=1,max=60"`
	ExpirationDate string           `json:"expiration_date" validate:"required"` // "YYYY-MM-DD"
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference      string           `json:"reference,omitempty"`
}

// ConsumeStockRequest body para POST /api/kardex/consumptions: consumo FEFO
// sobre los lotes del producto, todo o nada.
type ConsumeStockRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
}

// WriteOffRequest body para POST /api/kardex/write-offs: baja explícita del
// remanente de un lote (vencidos, daños).
type WriteOffRequest struct {
	LotID     string `json:"lot_id" validate:"required,uuid"`
	Reference string `json:"reference,omitempty"`
}

// ConsumptionLineItem una línea del plan FEFO aplicado: cuánto tomó cada lote.
type ConsumptionLineItem struct {
	LotID     string          `json:"lot_id"`
	LotNumber string          `json:"lot_number"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ConsumeResponse resultado de un consumo FEFO todo o nada.
type ConsumeResponse struct {
	TransactionID string                `json:"transaction_id"`
	ProductID     string                `json:"product_id"`
	Quantity      decimal.Decimal       `json:"quantity"`
	Lines         []ConsumptionLineItem `json:"lines"`
}

// LotResponse estado actual de un lote. Status y DaysToExpiry se derivan en
// cada lectura, nunca se almacenan.
type LotResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	LotNumber      string          `json:"lot_number"`
	ExpirationDate string          `json:"expiration_date"`
	ReceivedQty    decimal.Decimal `json:"received_qty"`
	ConsumedQty    decimal.Decimal `json:"consumed_qty"`
	Remaining      decimal.Decimal `json:"remaining"`
	Status         string          `json:"status"` // OK | POR_VENCER | VENCIDO
	DaysToExpiry   int             `json:"days_to_expiry"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LotMovementResponse una entrada del ledger de un lote.
type LotMovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	LotID         string          `json:"lot_id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"` // RECEIVE | CONSUME | WRITE_OFF
	Quantity      decimal.Decimal `json:"quantity"`
	Reference     string          `json:"reference,omitempty"`
	Date          time.Time       `json:"date"`
}

// ProductKardexResponse kardex de un producto: lotes con estado derivado.
type ProductKardexResponse struct {
	Product        ProductResponse `json:"product"`
	Lots           []LotResponse   `json:"lots"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
}

// LotSnapshotResponse corte mensual de un lote.
type LotSnapshotResponse struct {
	LotID        string          `json:"lot_id"`
	Period       string          `json:"period"`
	ReceivedQty  decimal.Decimal `json:"received_qty"`
	ConsumedQty  decimal.Decimal `json:"consumed_qty"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	CreatedAt    time.Time       `json:"created_at"`
	Superseded   bool            `json:"superseded"`
}
