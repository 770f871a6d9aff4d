package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Entry es un registro inmutable del ledger de una entidad (lote, activo, empleado).
// Las correcciones son entradas nuevas, nunca ediciones: el historial es la verdad
// y cualquier estado derivado debe poder reconstruirse plegándolo desde cero.
type Entry struct {
	ID       string
	EntityID string
	Kind     string
	Quantity decimal.Decimal
	Date     time.Time
	Meta     map[string]string
}

// SortChronological ordena las entradas por fecha ascendente. A igual fecha
// se respeta el orden de inserción (sort estable) para que el replay sea
// determinista.
func SortChronological(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

// SumUntil suma las cantidades de los kinds indicados con fecha <= asOf.
// Con kinds vacío suma todas las entradas (balance corrido).
func SumUntil(entries []Entry, asOf time.Time, kinds ...string) decimal.Decimal {
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	total := decimal.Zero
	for _, e := range entries {
		if e.Date.After(asOf) {
			continue
		}
		if len(want) > 0 && !want[e.Kind] {
			continue
		}
		total = total.Add(e.Quantity)
	}
	return total
}

// Balance pliega todas las entradas hasta asOf en orden cronológico y devuelve
// el balance corrido. Función pura del historial: sirve para rebuild/repair y
// para verificar que el estado materializado no haya derivado.
func Balance(entries []Entry, asOf time.Time) decimal.Decimal {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortChronological(sorted)
	return SumUntil(sorted, asOf)
}
