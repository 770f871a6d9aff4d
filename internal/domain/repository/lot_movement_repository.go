package repository

import (
	"time"

	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
)

// LotMovementRepository define el puerto de persistencia para el ledger
// append-only del kardex. Sin Update ni Delete: las correcciones son
// movimientos nuevos.
type LotMovementRepository interface {
	Create(movement *entity.LotMovement) error
	ListByLot(lotID string, until *time.Time) ([]*entity.LotMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LotMovement, error)
}

// LotSnapshotRepository define el puerto para los cortes mensuales del kardex.
// La unicidad activa por (lote, período) la garantiza un índice parcial;
// Save debe traducir la violación a domain.ErrDuplicatePeriod.
type LotSnapshotRepository interface {
	// Save inserta el snapshot. Con force marca el activo previo como
	// superseded (misma tx) antes de insertar; sin force y con snapshot
	// previo retorna domain.ErrDuplicatePeriod.
	Save(snapshot *entity.LotSnapshot, force bool) error
	Get(lotID, period string) (*entity.LotSnapshot, error)
	ListByPeriod(period string, companyID string) ([]*entity.LotSnapshot, error)
}
