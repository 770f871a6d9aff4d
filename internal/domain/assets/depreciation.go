// Package assets contiene el servicio de dominio de depreciación por línea
// recta mensual. Funciones puras sobre decimal; el redondeo monetario es
// bancario a 2 decimales para evitar sesgo acumulado entre cierres.
package assets

import (
	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/domain"
)

// MonthlyQuota calcula la cuota mensual de línea recta:
// (costo - residual) / vida útil en meses, redondeo bancario a 2 decimales.
// Se calcula una sola vez al registrar el activo y queda constante.
func MonthlyQuota(acquisitionCost, residualValue decimal.Decimal, usefulLifeMonths int) (decimal.Decimal, error) {
	if usefulLifeMonths <= 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if acquisitionCost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if residualValue.IsNegative() || residualValue.GreaterThanOrEqual(acquisitionCost) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	base := acquisitionCost.Sub(residualValue)
	return base.Div(decimal.NewFromInt(int64(usefulLifeMonths))).RoundBank(2), nil
}

// NextQuota devuelve el incremento a aplicar en el siguiente cierre, con tope:
// la depreciación acumulada nunca supera la base depreciable, así que la cuota
// final puede ser un residuo menor que la mensual. Cero si el activo ya está
// totalmente depreciado.
func NextQuota(depreciableBase, accumulated, monthlyQuota decimal.Decimal) decimal.Decimal {
	remaining := depreciableBase.Sub(accumulated)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(monthlyQuota, remaining)
}
