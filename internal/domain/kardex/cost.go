package kardex

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado al
// recibir un lote (servicio de dominio).
// NuevoCosto = ((RemActual * CostoActual) + (CantRecibida * CostoRecepcion)) / (RemActual + CantRecibida)
func WeightedAverageCost(currentQty, currentCost, receivedQty, receivedCost decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(receivedQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(receivedQty.Mul(receivedCost))
	return num.Div(sum)
}
