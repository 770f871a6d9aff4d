package assets

import (
	"context"

	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de activos atados a esa tx. La cuota del período y la
// materialización del acumulado se confirman juntas o ninguna.
type TxRunner interface {
	RunAssets(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		depRepo repository.DepreciationRepository,
	) error) error
}
