package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
)

func TestParsePeriod_FormatoValido(t *testing.T) {
	p, err := ledger.ParsePeriod("2026-08")
	require.NoError(t, err)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, time.August, p.Month)
	assert.Equal(t, "2026-08", p.String())
}

func TestParsePeriod_FormatoInvalido(t *testing.T) {
	casos := []string{"", "2026", "2026-13", "08-2026", "2026/08"}
	for _, s := range casos {
		_, err := ledger.ParsePeriod(s)
		assert.Error(t, err, "el período %q debe rechazarse", s)
	}
}

func TestPeriod_StartEnd(t *testing.T) {
	p := ledger.Period{Year: 2026, Month: time.February}
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), p.Start())
	// Último instante de febrero (2026 no es bisiesto)
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), p.End())
}

func TestPeriod_NextCruzaElAnio(t *testing.T) {
	p := ledger.Period{Year: 2025, Month: time.December}
	next := p.Next()
	assert.Equal(t, ledger.Period{Year: 2026, Month: time.January}, next)
}

func TestPeriod_MonthsSince(t *testing.T) {
	ene := ledger.Period{Year: 2026, Month: time.January}
	jul := ledger.Period{Year: 2026, Month: time.July}
	assert.Equal(t, 6, jul.MonthsSince(ene))
	assert.Equal(t, -6, ene.MonthsSince(jul))
	assert.Equal(t, 0, ene.MonthsSince(ene))
}

func TestPeriodOf_InstanteCualquiera(t *testing.T) {
	instante := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, ledger.Period{Year: 2026, Month: time.August}, ledger.PeriodOf(instante))
}
