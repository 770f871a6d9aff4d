package kardex

import (
	"context"

	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el kardex por lotes: o se aplican todos los movimientos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.LotMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
	// RunClose corre el corte mensual de un lote en su propia transacción.
	RunClose(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.LotMovementRepository,
		snapRepo repository.LotSnapshotRepository,
	) error) error
}
