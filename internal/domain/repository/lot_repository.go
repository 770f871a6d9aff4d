package repository

import "github.com/KingHansX/EContable-sub001/internal/domain/entity"

// LotRepository define el puerto de persistencia para lotes.
// Usado dentro de transacciones para garantizar consistencia.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByProductAndNumber(productID, lotNumber string) (*entity.Lot, error)
	ListByProduct(productID string) ([]*entity.Lot, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Lot, error)
	// ListIDs devuelve los IDs de todos los lotes de la empresa, para los cierres de período.
	ListIDs(companyID string) ([]string, error)
	// ListByProductForUpdate bloquea las filas de los lotes del producto
	// (SELECT FOR UPDATE) para el consumo FEFO multi-lote.
	ListByProductForUpdate(productID string) ([]*entity.Lot, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Lot, error)
	// UpdateQuantities materializa received/consumed tras un movimiento (misma tx).
	UpdateQuantities(lot *entity.Lot) error
}
