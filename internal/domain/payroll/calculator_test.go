package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/payroll"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

var tasaIESS = d("0.0945")

// Vector de referencia: base 500, sin extras ni anticipos.
// Aporte = 500 × 0.0945 = 47.25; neto = 452.75.
func TestCompute_VectorDeReferencia(t *testing.T) {
	res, err := payroll.Compute(payroll.Inputs{
		BaseSalary:       d("500"),
		ContributionRate: tasaIESS,
	})
	require.NoError(t, err)

	assert.True(t, res.GrossPay.Equal(d("500")))
	assert.True(t, res.StatutoryContribution.Equal(d("47.25")),
		"aporte IESS: esperado 47.25, obtuvo %s", res.StatutoryContribution)
	assert.True(t, res.TotalDeductions.Equal(d("47.25")))
	assert.True(t, res.NetPay.Equal(d("452.75")),
		"neto: esperado 452.75, obtuvo %s", res.NetPay)
}

func TestCompute_ConExtrasYAnticipos(t *testing.T) {
	res, err := payroll.Compute(payroll.Inputs{
		BaseSalary:       d("800"),
		Overtime:         d("120"),
		Bonuses:          d("80"),
		Advances:         d("150"),
		ContributionRate: tasaIESS,
	})
	require.NoError(t, err)

	// bruto = 1000; aporte = 94.50; descuentos = 244.50; neto = 755.50
	assert.True(t, res.GrossPay.Equal(d("1000")))
	assert.True(t, res.StatutoryContribution.Equal(d("94.50")))
	assert.True(t, res.TotalDeductions.Equal(d("244.50")))
	assert.True(t, res.NetPay.Equal(d("755.50")))
}

// Invariante: neto = bruto - descuentos, y el aporte es obligatorio con bruto > 0.
func TestCompute_InvariantesDelRol(t *testing.T) {
	res, err := payroll.Compute(payroll.Inputs{
		BaseSalary:       d("733.47"),
		Overtime:         d("41.20"),
		ContributionRate: tasaIESS,
	})
	require.NoError(t, err)

	assert.True(t, res.NetPay.Equal(res.GrossPay.Sub(res.TotalDeductions)))
	assert.True(t, res.TotalDeductions.GreaterThanOrEqual(res.StatutoryContribution))
	assert.True(t, res.StatutoryContribution.GreaterThan(decimal.Zero))
}

func TestCompute_RedondeoBancarioDelAporte(t *testing.T) {
	// 468.25 × 0.0945 = 44.249625 -> 44.25
	res, err := payroll.Compute(payroll.Inputs{
		BaseSalary:       d("468.25"),
		ContributionRate: tasaIESS,
	})
	require.NoError(t, err)
	assert.True(t, res.StatutoryContribution.Equal(d("44.25")),
		"obtuvo %s", res.StatutoryContribution)

	// Mitad exacta: 300 × 0.0945 = 28.35 (exacto, sin redondeo);
	// 100 × 0.0945 = 9.45 exacto. Caso de mitad: 50 × 0.0945 = 4.725 -> par: 4.72
	res, err = payroll.Compute(payroll.Inputs{
		BaseSalary:       d("50"),
		ContributionRate: tasaIESS,
	})
	require.NoError(t, err)
	assert.True(t, res.StatutoryContribution.Equal(d("4.72")),
		"4.725 redondea al par 4.72, obtuvo %s", res.StatutoryContribution)
}

func TestCompute_BrutoCeroNoAporta(t *testing.T) {
	res, err := payroll.Compute(payroll.Inputs{ContributionRate: tasaIESS})
	require.NoError(t, err)
	assert.True(t, res.GrossPay.IsZero())
	assert.True(t, res.StatutoryContribution.IsZero())
	assert.True(t, res.NetPay.IsZero())
}

// Los descuentos nunca pueden superar el bruto: el rol no se genera.
func TestCompute_AnticiposExcesivos(t *testing.T) {
	_, err := payroll.Compute(payroll.Inputs{
		BaseSalary:       d("500"),
		Advances:         d("460"), // 460 + 47.25 > 500
		ContributionRate: tasaIESS,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeNetPay)
}

func TestCompute_ComponentesNegativos(t *testing.T) {
	_, err := payroll.Compute(payroll.Inputs{
		BaseSalary:       d("-500"),
		ContributionRate: tasaIESS,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = payroll.Compute(payroll.Inputs{
		BaseSalary:       d("500"),
		Overtime:         d("-1"),
		ContributionRate: tasaIESS,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompute_TasaInvalida(t *testing.T) {
	_, err := payroll.Compute(payroll.Inputs{BaseSalary: d("500"), ContributionRate: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = payroll.Compute(payroll.Inputs{BaseSalary: d("500"), ContributionRate: d("-0.1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
