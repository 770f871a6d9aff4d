package assets_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/assets"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlyQuota
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlyQuota_LineaRectaSimple(t *testing.T) {
	q, err := assets.MonthlyQuota(d("1200"), d("0"), 12)
	require.NoError(t, err)
	assert.True(t, q.Equal(d("100")), "1200 / 12 = 100, obtuvo %s", q)
}

func TestMonthlyQuota_ConValorResidual(t *testing.T) {
	q, err := assets.MonthlyQuota(d("5000"), d("500"), 36)
	require.NoError(t, err)
	// (5000-500)/36 = 125
	assert.True(t, q.Equal(d("125")))
}

func TestMonthlyQuota_RedondeoBancario(t *testing.T) {
	// 1000/12 = 83.3333... -> 83.33
	q, err := assets.MonthlyQuota(d("1000"), d("0"), 12)
	require.NoError(t, err)
	assert.True(t, q.Equal(d("83.33")), "redondeo bancario a 2 decimales, obtuvo %s", q)

	// 100/32 = 3.125 -> mitad exacta: redondeo bancario da 3.12 (par)
	q, err = assets.MonthlyQuota(d("100"), d("0"), 32)
	require.NoError(t, err)
	assert.True(t, q.Equal(d("3.12")), "3.125 redondea al par 3.12, obtuvo %s", q)
}

func TestMonthlyQuota_ParametrosInvalidos(t *testing.T) {
	_, err := assets.MonthlyQuota(d("1200"), d("0"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "vida útil cero")

	_, err = assets.MonthlyQuota(d("0"), d("0"), 12)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo cero")

	_, err = assets.MonthlyQuota(d("1200"), d("-1"), 12)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "residual negativo")

	_, err = assets.MonthlyQuota(d("1200"), d("1200"), 12)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "residual igual al costo")
}

// ──────────────────────────────────────────────────────────────────────────────
// NextQuota: tope y cuota residual final
// ──────────────────────────────────────────────────────────────────────────────

func TestNextQuota_CuotaCompletaMientrasHayBase(t *testing.T) {
	inc := assets.NextQuota(d("1200"), d("1000"), d("100"))
	assert.True(t, inc.Equal(d("100")))
}

func TestNextQuota_UltimaCuotaEsResidual(t *testing.T) {
	// Acumulado 1150 de base 1200: la última cuota es 50, no 100.
	inc := assets.NextQuota(d("1200"), d("1150"), d("100"))
	assert.True(t, inc.Equal(d("50")))
}

func TestNextQuota_ActivoTotalmenteDepreciado(t *testing.T) {
	inc := assets.NextQuota(d("1200"), d("1200"), d("100"))
	assert.True(t, inc.IsZero(), "sin base restante la cuota es cero")
}

// Con cost=1200, residual=0, vida=12, tras 12 cierres el acumulado es
// exactamente 1200 y el valor en libros 0; un 13° cierre no cambia nada.
func TestNextQuota_DoceMesesCompletanLaBase(t *testing.T) {
	base := d("1200")
	monthly, err := assets.MonthlyQuota(base, d("0"), 12)
	require.NoError(t, err)

	accumulated := decimal.Zero
	for mes := 1; mes <= 12; mes++ {
		inc := assets.NextQuota(base, accumulated, monthly)
		assert.False(t, inc.IsZero(), "mes %d debe aplicar cuota", mes)
		accumulated = accumulated.Add(inc)
	}
	assert.True(t, accumulated.Equal(base), "acumulado tras 12 meses = 1200, obtuvo %s", accumulated)

	// Mes 13: no-op.
	assert.True(t, assets.NextQuota(base, accumulated, monthly).IsZero())
}

// Con cuota redondeada (83.33) quedan 0.04 de residuo tras 12 meses:
// el tope los absorbe en una cuota final menor y el acumulado cierra exacto.
func TestNextQuota_ResiduoDeRedondeoSeAbsorbeAlFinal(t *testing.T) {
	base := d("1000")
	monthly := d("83.33")

	accumulated := decimal.Zero
	meses := 0
	for !assets.NextQuota(base, accumulated, monthly).IsZero() {
		accumulated = accumulated.Add(assets.NextQuota(base, accumulated, monthly))
		meses++
		require.Less(t, meses, 20, "la depreciación debe terminar")
	}

	assert.True(t, accumulated.Equal(base), "el acumulado cierra exacto en la base")
	assert.Equal(t, 13, meses, "12 cuotas de 83.33 más un residuo de 0.04")
}
