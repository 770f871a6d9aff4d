package kardex

import (
	"time"

	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
)

// DefaultExpiryWindowDays ventana por defecto para POR_VENCER.
const DefaultExpiryWindowDays = 30

// DaysToExpiry devuelve los días calendario entre now y la fecha de vencimiento,
// comparando fechas truncadas a medianoche (la hora del día no cuenta).
// Negativo si el lote ya venció.
func DaysToExpiry(expirationDate, now time.Time) int {
	exp := truncateToDay(expirationDate)
	today := truncateToDay(now)
	return int(exp.Sub(today).Hours() / 24)
}

// Status deriva el estado de vencimiento de un lote. Función pura de la fecha
// de vencimiento y de now (inyectado por el caller): se recalcula en cada
// lectura, nunca se almacena. Los lotes vencidos siguen visibles hasta que una
// baja explícita retire el remanente.
func Status(expirationDate, now time.Time, windowDays int) string {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	days := DaysToExpiry(expirationDate, now)
	switch {
	case days < 0:
		return entity.LotStatusExpired
	case days < windowDays:
		return entity.LotStatusExpiringSoon
	default:
		return entity.LotStatusOK
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
