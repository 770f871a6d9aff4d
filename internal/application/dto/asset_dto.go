package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest body para POST /api/assets.
type CreateAssetRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Code             string          `json:"code" validate:"omitempty,max=60"`
	AcquisitionCost  decimal.Decimal `json:"acquisition_cost"`
	ResidualValue    decimal.Decimal `json:"residual_value"`
	UsefulLifeMonths int             `json:"useful_life_months" validate:"required,min=1"`
	AcquisitionDate  string          `json:"acquisition_date" validate:"required"` // "YYYY-MM-DD"
}

// AssetResponse estado actual de un activo con sus agregados derivados.
type AssetResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Code                string          `json:"code,omitempty"`
	AcquisitionCost     decimal.Decimal `json:"acquisition_cost"`
	ResidualValue       decimal.Decimal `json:"residual_value"`
	UsefulLifeMonths    int             `json:"useful_life_months"`
	MonthlyDepreciation decimal.Decimal `json:"monthly_depreciation"`
	AccumulatedDep      decimal.Decimal `json:"accumulated_depreciation"`
	BookValue           decimal.Decimal `json:"book_value"`
	AcquisitionDate     string          `json:"acquisition_date"`
	Disposed            bool            `json:"disposed"`
	FullyDepreciated    bool            `json:"fully_depreciated"`
	CreatedAt           time.Time       `json:"created_at"`
}

// DepreciationEntryResponse cuota de depreciación de un período.
type DepreciationEntryResponse struct {
	AssetID          string          `json:"asset_id"`
	Period           string          `json:"period"`
	Amount           decimal.Decimal `json:"amount"`
	AccumulatedAfter decimal.Decimal `json:"accumulated_after"`
	BookValueAfter   decimal.Decimal `json:"book_value_after"`
	CreatedAt        time.Time       `json:"created_at"`
	Superseded       bool            `json:"superseded"`
}
