package repository

import "github.com/KingHansX/EContable-sub001/internal/domain/entity"

// AssetRepository define el puerto de persistencia para activos fijos.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	GetForUpdate(id string) (*entity.Asset, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Asset, error)
	// ListDepreciableIDs devuelve los ids de activos no dados de baja y con
	// base depreciable pendiente (alcance de un cierre de depreciación).
	ListDepreciableIDs(companyID string) ([]string, error)
	// UpdateAccumulated materializa la depreciación acumulada (misma tx que la entrada).
	UpdateAccumulated(asset *entity.Asset) error
	// MarkDisposed registra la baja (estado terminal).
	MarkDisposed(asset *entity.Asset) error
}

// DepreciationRepository define el puerto para el ledger de depreciación.
// Las entradas son a la vez el snapshot del período del activo.
type DepreciationRepository interface {
	// Save inserta la entrada del período. Con force marca la activa previa
	// como superseded (misma tx); sin force y con entrada previa retorna
	// domain.ErrDuplicatePeriod.
	Save(entry *entity.DepreciationEntry, force bool) error
	Get(assetID, period string) (*entity.DepreciationEntry, error)
	ListByAsset(assetID string) ([]*entity.DepreciationEntry, error)
}
