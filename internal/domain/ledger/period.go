// Package ledger contiene el núcleo compartido del motor de valoración periódica:
// períodos contables, entradas append-only, serialización por entidad y la
// ejecución idempotente de lotes de período. Kardex, depreciación y nómina son
// configuraciones delgadas de este núcleo.
package ledger

import (
	"fmt"
	"time"

	"github.com/KingHansX/EContable-sub001/internal/domain"
)

// Period identifica un mes contable. Es el grano de todo cierre:
// snapshot de kardex, cuota de depreciación y rol de pagos.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod interpreta el formato "YYYY-MM" (ej. "2026-08").
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("período %q: %w", s, domain.ErrInvalidInput)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf devuelve el período al que pertenece un instante.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// String devuelve el período en formato "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// IsZero indica si el período no fue inicializado.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Start devuelve el primer instante del mes (UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End devuelve el último instante del mes (UTC).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Next devuelve el mes siguiente.
func (p Period) Next() Period {
	return PeriodOf(p.Start().AddDate(0, 1, 0))
}

// Before indica si p es anterior a o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// MonthsSince devuelve cuántos meses completos separan a p de o (p - o).
// Negativo si p es anterior a o.
func (p Period) MonthsSince(o Period) int {
	return (p.Year-o.Year)*12 + int(p.Month) - int(o.Month)
}
