package ledger_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Replay: el balance siempre se deriva del historial completo
// ──────────────────────────────────────────────────────────────────────────────

func dia(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestBalance_PliegaEnOrdenCronologico(t *testing.T) {
	// Entradas deliberadamente desordenadas: el fold debe ordenarlas por fecha.
	entries := []ledger.Entry{
		{EntityID: "lote-1", Kind: "CONSUMO", Quantity: decimal.NewFromInt(-3), Date: dia(10)},
		{EntityID: "lote-1", Kind: "RECEPCION", Quantity: decimal.NewFromInt(10), Date: dia(1)},
		{EntityID: "lote-1", Kind: "CONSUMO", Quantity: decimal.NewFromInt(-2), Date: dia(20)},
	}

	assert.True(t, ledger.Balance(entries, dia(31)).Equal(decimal.NewFromInt(5)),
		"balance final: 10 - 3 - 2 = 5")
	assert.True(t, ledger.Balance(entries, dia(15)).Equal(decimal.NewFromInt(7)),
		"balance as-of día 15: 10 - 3 = 7")
	assert.True(t, ledger.Balance(entries, dia(1).Add(-time.Hour)).IsZero(),
		"antes de la primera entrada el balance es cero")
}

func TestSumUntil_FiltraPorKind(t *testing.T) {
	entries := []ledger.Entry{
		{Kind: "RECEPCION", Quantity: decimal.NewFromInt(10), Date: dia(1)},
		{Kind: "CONSUMO", Quantity: decimal.NewFromInt(-4), Date: dia(5)},
		{Kind: "BAJA", Quantity: decimal.NewFromInt(-1), Date: dia(9)},
	}
	recibido := ledger.SumUntil(entries, dia(31), "RECEPCION")
	salidas := ledger.SumUntil(entries, dia(31), "CONSUMO", "BAJA")
	assert.True(t, recibido.Equal(decimal.NewFromInt(10)))
	assert.True(t, salidas.Equal(decimal.NewFromInt(-5)))
}

// ──────────────────────────────────────────────────────────────────────────────
// EntityLocks: a lo sumo una mutación en vuelo por entidad
// ──────────────────────────────────────────────────────────────────────────────

func TestEntityLocks_SerializaMismaEntidad(t *testing.T) {
	locks := ledger.NewEntityLocks()

	const goroutines = 32
	var counter int // protegido únicamente por el lock de la entidad
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_ = locks.WithEntity("empleado-1", func() error {
				v := counter
				time.Sleep(time.Microsecond) // fuerza el interleaving si no hay exclusión
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter,
		"sin exclusión por entidad el contador perdería incrementos")
}

func TestEntityLocks_EntidadesDistintasNoSeBloquean(t *testing.T) {
	locks := ledger.NewEntityLocks()
	bloqueado := make(chan struct{})
	libre := make(chan struct{})

	go func() {
		_ = locks.WithEntity("activo-1", func() error {
			close(bloqueado)
			<-libre
			return nil
		})
	}()

	<-bloqueado
	done := make(chan struct{})
	go func() {
		_ = locks.WithEntity("activo-2", func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
		// otra entidad entra sin esperar
	case <-time.After(2 * time.Second):
		t.Fatal("una entidad distinta no debe esperar el lock de activo-1")
	}
	close(libre)
}

// ──────────────────────────────────────────────────────────────────────────────
// RunBatch: paralelo entre entidades, idempotente por (entidad, período)
// ──────────────────────────────────────────────────────────────────────────────

func TestRunBatch_ClasificaProcesadosOmitidosYFallos(t *testing.T) {
	locks := ledger.NewEntityLocks()
	period := ledger.Period{Year: 2026, Month: time.August}

	ids := []string{"a", "b", "c", "d"}
	res := ledger.RunBatch(context.Background(), period, ids, locks, func(_ context.Context, id string) error {
		switch id {
		case "b":
			return domain.ErrDuplicatePeriod // ya cerrado: no-op
		case "d":
			return assert.AnError
		default:
			return nil
		}
	})

	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Skipped, "ErrDuplicatePeriod cuenta como omitido, no como fallo")
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "d", res.Failures[0].EntityID)
	assert.True(t, res.Failed())
}

func TestRunBatch_CadaEntidadSeEjecutaUnaVez(t *testing.T) {
	locks := ledger.NewEntityLocks()
	period := ledger.Period{Year: 2026, Month: time.January}

	var mu sync.Mutex
	visto := make(map[string]int)
	ids := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		ids = append(ids, fmt.Sprintf("ent-%02d", i))
	}

	res := ledger.RunBatch(context.Background(), period, ids, locks, func(_ context.Context, id string) error {
		mu.Lock()
		visto[id]++
		mu.Unlock()
		return nil
	})

	assert.Equal(t, len(ids), res.Processed)
	for id, n := range visto {
		assert.Equal(t, 1, n, "la entidad %s debe procesarse exactamente una vez", id)
	}
}

func TestRunBatch_SinEntidadesEsNoOp(t *testing.T) {
	res := ledger.RunBatch(context.Background(), ledger.Period{Year: 2026, Month: time.May}, nil,
		ledger.NewEntityLocks(), func(context.Context, string) error {
			t.Fatal("no debe invocarse run sin entidades")
			return nil
		})
	assert.Equal(t, 0, res.Processed)
	assert.False(t, res.Failed())
}
