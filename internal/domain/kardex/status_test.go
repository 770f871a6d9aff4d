package kardex_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/kardex"
)

var hoy = time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

func fecha(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestStatus_Vencido(t *testing.T) {
	assert.Equal(t, entity.LotStatusExpired,
		kardex.Status(fecha(2026, 8, 27), hoy, 30), "vencido ayer")
	assert.Equal(t, entity.LotStatusExpired,
		kardex.Status(fecha(2025, 1, 1), hoy, 30), "vencido hace más de un año")
}

func TestStatus_VenceHoyEsPorVencer(t *testing.T) {
	// days_to_expiry == 0 cae dentro de la ventana, no en VENCIDO.
	assert.Equal(t, entity.LotStatusExpiringSoon,
		kardex.Status(fecha(2026, 8, 28), hoy, 30))
}

func TestStatus_DentroDeLaVentana(t *testing.T) {
	assert.Equal(t, entity.LotStatusExpiringSoon,
		kardex.Status(fecha(2026, 9, 26), hoy, 30), "faltan 29 días: límite superior de la ventana")
}

func TestStatus_FueraDeLaVentana(t *testing.T) {
	assert.Equal(t, entity.LotStatusOK,
		kardex.Status(fecha(2026, 9, 27), hoy, 30), "faltan exactamente 30 días: ya es OK")
	assert.Equal(t, entity.LotStatusOK,
		kardex.Status(fecha(2027, 8, 28), hoy, 30))
}

func TestStatus_LaHoraDelDiaNoCuenta(t *testing.T) {
	// Vence hoy a las 00:00 y se consulta hoy a las 23:59: sigue sin estar vencido.
	casiMedianoche := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, entity.LotStatusExpiringSoon,
		kardex.Status(fecha(2026, 8, 28), casiMedianoche, 30))
}

func TestStatus_VentanaNoPositivaUsaDefault(t *testing.T) {
	assert.Equal(t, entity.LotStatusExpiringSoon,
		kardex.Status(fecha(2026, 9, 20), hoy, 0))
}

func TestDaysToExpiry(t *testing.T) {
	assert.Equal(t, 0, kardex.DaysToExpiry(fecha(2026, 8, 28), hoy))
	assert.Equal(t, 1, kardex.DaysToExpiry(fecha(2026, 8, 29), hoy))
	assert.Equal(t, -1, kardex.DaysToExpiry(fecha(2026, 8, 27), hoy))
	assert.Equal(t, 30, kardex.DaysToExpiry(fecha(2026, 9, 27), hoy))
}
