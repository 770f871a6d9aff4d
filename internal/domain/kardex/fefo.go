// Package kardex contiene los servicios de dominio del kardex por lotes:
// el plan de consumo FEFO y la derivación del estado de vencimiento.
// Funciones puras, sin acceso a persistencia ni al reloj del sistema.
package kardex

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
)

// ConsumptionLine indica cuánto tomar de un lote dentro de un consumo FEFO.
type ConsumptionLine struct {
	LotID    string
	Quantity decimal.Decimal
}

// PlanConsumption arma el plan de consumo FEFO para una cantidad solicitada:
// lotes con remanente > 0 ordenados por fecha de vencimiento ascendente y, a
// igual vencimiento, por fecha de creación ascendente (lote más antiguo primero).
// Se consume de cada lote en orden hasta agotar la cantidad.
//
// Todo o nada: si el remanente total del producto no alcanza, retorna
// domain.ErrInsufficientStock y ningún plan parcial.
func PlanConsumption(lots []*entity.Lot, amount decimal.Decimal) ([]ConsumptionLine, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	available := make([]*entity.Lot, 0, len(lots))
	total := decimal.Zero
	for _, l := range lots {
		if l.Remaining().GreaterThan(decimal.Zero) {
			available = append(available, l)
			total = total.Add(l.Remaining())
		}
	}
	if total.LessThan(amount) {
		return nil, domain.ErrInsufficientStock
	}

	sort.SliceStable(available, func(i, j int) bool {
		if !available[i].ExpirationDate.Equal(available[j].ExpirationDate) {
			return available[i].ExpirationDate.Before(available[j].ExpirationDate)
		}
		return available[i].CreatedAt.Before(available[j].CreatedAt)
	})

	var plan []ConsumptionLine
	pending := amount
	for _, l := range available {
		if !pending.GreaterThan(decimal.Zero) {
			break
		}
		take := decimal.Min(l.Remaining(), pending)
		plan = append(plan, ConsumptionLine{LotID: l.ID, Quantity: take})
		pending = pending.Sub(take)
	}
	return plan, nil
}
