package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// AssetTotals agregados de activos fijos para el dashboard.
type AssetTotals struct {
	Count            int
	TotalCost        decimal.Decimal
	TotalAccumDep    decimal.Decimal
	TotalBookValue   decimal.Decimal
	FullyDepreciated int
}

// InventoryTotals agregados del kardex para el dashboard.
type InventoryTotals struct {
	LotCount       int
	TotalRemaining decimal.Decimal
	TotalValue     decimal.Decimal // remanente × costo promedio del producto
	ExpiredLots    int
}

// PayrollTotals agregados de nómina de un período.
type PayrollTotals struct {
	Employees      int
	TotalGross     decimal.Decimal
	TotalStatutory decimal.Decimal
	TotalNet       decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard. Los totales son
// sumas puras sobre el estado actual de las entidades, no se almacenan aparte.
type AnalyticsRepository interface {
	GetAssetTotals(ctx context.Context, companyID string) (AssetTotals, error)
	GetInventoryTotals(ctx context.Context, companyID string) (InventoryTotals, error)
	GetPayrollTotals(ctx context.Context, companyID, period string) (PayrollTotals, error)
}
