package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/KingHansX/EContable-sub001/internal/domain"
)

// defaultBatchWorkers limita el paralelismo de un cierre de período.
const defaultBatchWorkers = 8

// BatchResult resume la ejecución de un lote de período.
type BatchResult struct {
	Period    Period
	Processed int            // entidades con snapshot nuevo
	Skipped   int            // entidades ya procesadas (re-ejecución sin force: no-op)
	Failures  []BatchFailure // entidades cuyo cierre falló; el resto no se revierte
}

// BatchFailure identifica la entidad cuyo cierre falló y la causa.
type BatchFailure struct {
	EntityID string
	Err      error
}

// Failed indica si alguna entidad del lote falló.
func (r BatchResult) Failed() bool { return len(r.Failures) > 0 }

// RunBatch ejecuta el cierre de período para cada entidad: paralelo entre
// entidades (pool acotado de workers) y serializado por entidad vía locks.
//
// Contrato de idempotencia: si run devuelve
// domain.ErrDuplicatePeriod la entidad ya tenía snapshot para el período y se
// cuenta como Skipped, no como error. Cada entidad es atómica por sí misma:
// un fallo en una no afecta las demás ni revierte las ya procesadas.
func RunBatch(ctx context.Context, period Period, entityIDs []string, locks *EntityLocks, run func(ctx context.Context, entityID string) error) BatchResult {
	result := BatchResult{Period: period}
	if len(entityIDs) == 0 {
		return result
	}

	workers := defaultBatchWorkers
	if len(entityIDs) < workers {
		workers = len(entityIDs)
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		work = make(chan string)
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for id := range work {
				err := locks.WithEntity(id, func() error {
					return run(ctx, id)
				})
				mu.Lock()
				switch {
				case err == nil:
					result.Processed++
				case errors.Is(err, domain.ErrDuplicatePeriod):
					result.Skipped++
				default:
					result.Failures = append(result.Failures, BatchFailure{EntityID: id, Err: err})
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range entityIDs {
		if ctx.Err() != nil {
			break
		}
		work <- id
	}
	close(work)
	wg.Wait()

	return result
}
