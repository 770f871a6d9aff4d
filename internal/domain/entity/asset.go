package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset representa un activo fijo depreciable por línea recta mensual.
// MonthlyDepreciation se calcula una sola vez al registrar el activo:
// (costo - residual) / vida útil, redondeo bancario a 2 decimales.
//
// Invariante: AccumulatedDep <= AcquisitionCost - ResidualValue.
// Una vez dado de baja (DisposedAt != nil) no se aceptan más cuotas.
type Asset struct {
	ID                  string
	CompanyID           string
	Name                string
	Code                string // código interno de activo
	AcquisitionCost     decimal.Decimal
	ResidualValue       decimal.Decimal
	UsefulLifeMonths    int
	MonthlyDepreciation decimal.Decimal
	AccumulatedDep      decimal.Decimal // materializado; reconstruible desde depreciation_entries
	AcquisitionDate     time.Time
	DisposedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Disposed indica si el activo fue dado de baja (estado terminal).
func (a *Asset) Disposed() bool { return a.DisposedAt != nil }

// DepreciableBase devuelve el monto total a depreciar (costo - residual).
func (a *Asset) DepreciableBase() decimal.Decimal {
	return a.AcquisitionCost.Sub(a.ResidualValue)
}

// BookValue devuelve el valor en libros: costo - depreciación acumulada.
func (a *Asset) BookValue() decimal.Decimal {
	return a.AcquisitionCost.Sub(a.AccumulatedDep)
}

// FullyDepreciated indica si el activo alcanzó el tope de depreciación.
func (a *Asset) FullyDepreciated() bool {
	return a.AccumulatedDep.GreaterThanOrEqual(a.DepreciableBase())
}

// DepreciationEntry es la entrada del ledger de depreciación de un activo y a
// la vez su snapshot de período: la cuota aplicada y los acumulados resultantes.
// A lo sumo una entrada activa por (activo, período).
type DepreciationEntry struct {
	ID               string
	AssetID          string
	Period           string // "YYYY-MM"
	Amount           decimal.Decimal
	AccumulatedAfter decimal.Decimal
	BookValueAfter   decimal.Decimal
	CreatedAt        time.Time
	SupersededAt     *time.Time
}
