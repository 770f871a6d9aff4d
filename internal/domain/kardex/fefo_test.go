package kardex_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/kardex"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func lote(id string, received, consumed int64, expDay int, createdDay int) *entity.Lot {
	return &entity.Lot{
		ID:             id,
		ProductID:      "prod-1",
		ReceivedQty:    decimal.NewFromInt(received),
		ConsumedQty:    decimal.NewFromInt(consumed),
		ExpirationDate: time.Date(2026, 9, expDay, 0, 0, 0, 0, time.UTC),
		CreatedAt:      time.Date(2026, 8, createdDay, 0, 0, 0, 0, time.UTC),
	}
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// PlanConsumption: FEFO determinista
// ──────────────────────────────────────────────────────────────────────────────

// Caso del ejemplo canónico: L1 (5 uds, vence día 10) y L2 (5 uds, vence día 20).
// Consumir 7 debe vaciar L1 y dejar 3 en L2.
func TestPlanConsumption_VencimientoMasProximoPrimero(t *testing.T) {
	lots := []*entity.Lot{
		lote("L2", 5, 0, 20, 2),
		lote("L1", 5, 0, 10, 1),
	}

	plan, err := kardex.PlanConsumption(lots, qty(7))
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, "L1", plan[0].LotID, "primero el lote que vence antes")
	assert.True(t, plan[0].Quantity.Equal(qty(5)))
	assert.Equal(t, "L2", plan[1].LotID)
	assert.True(t, plan[1].Quantity.Equal(qty(2)), "de L2 solo se toman las 2 restantes")
}

func TestPlanConsumption_EmpateDeVencimientoDesempataPorAntiguedad(t *testing.T) {
	lots := []*entity.Lot{
		lote("nuevo", 10, 0, 15, 20),
		lote("viejo", 10, 0, 15, 5),
	}

	plan, err := kardex.PlanConsumption(lots, qty(4))
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "viejo", plan[0].LotID, "a igual vencimiento se consume el lote más antiguo")
}

func TestPlanConsumption_IgnoraLotesSinRemanente(t *testing.T) {
	lots := []*entity.Lot{
		lote("agotado", 5, 5, 1, 1), // remanente 0, aunque vence primero
		lote("L2", 5, 0, 20, 2),
	}

	plan, err := kardex.PlanConsumption(lots, qty(3))
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "L2", plan[0].LotID)
}

func TestPlanConsumption_ConsumoExacto(t *testing.T) {
	lots := []*entity.Lot{lote("L1", 5, 2, 10, 1)}

	plan, err := kardex.PlanConsumption(lots, qty(3))
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.True(t, plan[0].Quantity.Equal(qty(3)), "puede drenarse el remanente completo")
}

// Todo o nada: si el total disponible no alcanza no se arma ningún plan parcial.
func TestPlanConsumption_StockInsuficiente(t *testing.T) {
	lots := []*entity.Lot{
		lote("L1", 5, 0, 10, 1),
		lote("L2", 5, 3, 20, 2),
	}

	plan, err := kardex.PlanConsumption(lots, qty(8)) // disponible: 5 + 2 = 7
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, plan, "no debe devolverse plan parcial")
}

func TestPlanConsumption_CantidadInvalida(t *testing.T) {
	lots := []*entity.Lot{lote("L1", 5, 0, 10, 1)}

	_, err := kardex.PlanConsumption(lots, qty(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = kardex.PlanConsumption(lots, qty(-2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Propiedad: la suma del plan siempre es igual a la cantidad solicitada.
func TestPlanConsumption_ElPlanSumaLoSolicitado(t *testing.T) {
	lots := []*entity.Lot{
		lote("a", 3, 0, 12, 1),
		lote("b", 4, 1, 11, 2),
		lote("c", 9, 2, 25, 3),
	}
	for _, n := range []int64{1, 3, 6, 13} { // hasta el total disponible (3+3+7=13)
		plan, err := kardex.PlanConsumption(lots, qty(n))
		require.NoError(t, err, "consumir %d debe ser posible", n)
		total := decimal.Zero
		for _, line := range plan {
			total = total.Add(line.Quantity)
		}
		assert.True(t, total.Equal(qty(n)), "el plan debe sumar exactamente %d", n)
	}
}
