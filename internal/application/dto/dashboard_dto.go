package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO totales para el dashboard: sumas puras sobre el estado
// actual de las entidades, calculadas al vuelo (no se almacenan).
type DashboardSummaryDTO struct {
	// Activos fijos
	AssetCount          int             `json:"asset_count"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	TotalAccumulatedDep decimal.Decimal `json:"total_accumulated_depreciation"`
	BookValueTotal      decimal.Decimal `json:"book_value_total"`
	FullyDepreciated    int             `json:"fully_depreciated"`

	// Inventario
	LotCount       int             `json:"lot_count"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	ExpiredLots    int             `json:"expired_lots"`

	// Nómina del período consultado
	PayrollPeriod string          `json:"payroll_period"`
	Employees     int             `json:"employees"`
	PayrollGross  decimal.Decimal `json:"payroll_gross"`
	PayrollIESS   decimal.Decimal `json:"payroll_iess"`
	PayrollNet    decimal.Decimal `json:"payroll_net"`
}
