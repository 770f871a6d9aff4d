package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/assets"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
	"github.com/KingHansX/EContable-sub001/pkg/logger"
)

// AssetsUseCase administra activos fijos y su depreciación mensual por línea
// recta. La cuota mensual se fija al registrar el activo; cada cierre de período
// aplica la cuota con tope en la base depreciable.
type AssetsUseCase struct {
	txRunner  TxRunner
	assetRepo repository.AssetRepository
	depRepo   repository.DepreciationRepository
	locks     *ledger.EntityLocks
	log       *logger.Logger
}

// NewAssetsUseCase construye el caso de uso.
func NewAssetsUseCase(
	txRunner TxRunner,
	assetRepo repository.AssetRepository,
	depRepo repository.DepreciationRepository,
	locks *ledger.EntityLocks,
	log *logger.Logger,
) *AssetsUseCase {
	return &AssetsUseCase{
		txRunner:  txRunner,
		assetRepo: assetRepo,
		depRepo:   depRepo,
		locks:     locks,
		log:       log.Component("assets"),
	}
}

// RegisterAsset registra un activo fijo. La cuota mensual queda fijada aquí:
// (costo - residual) / vida útil, redondeo bancario a 2 decimales.
func (uc *AssetsUseCase) RegisterAsset(companyID string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	acquisitionDate, err := time.Parse("2006-01-02", in.AcquisitionDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	monthly, err := assets.MonthlyQuota(in.AcquisitionCost, in.ResidualValue, in.UsefulLifeMonths)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	asset := &entity.Asset{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		Name:                in.Name,
		Code:                in.Code,
		AcquisitionCost:     in.AcquisitionCost,
		ResidualValue:       in.ResidualValue,
		UsefulLifeMonths:    in.UsefulLifeMonths,
		MonthlyDepreciation: monthly,
		AccumulatedDep:      decimal.Zero,
		AcquisitionDate:     acquisitionDate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	resp := toAssetResponse(asset)
	return &resp, nil
}

// Dispose da de baja un activo. Estado terminal: después de la baja no se
// aceptan más cuotas de depreciación.
func (uc *AssetsUseCase) Dispose(ctx context.Context, companyID, assetID string) (*dto.AssetResponse, error) {
	var disposed *entity.Asset
	err := uc.locks.WithEntity(assetID, func() error {
		return uc.txRunner.RunAssets(ctx, func(
			assetRepo repository.AssetRepository,
			_ repository.DepreciationRepository,
		) error {
			asset, err := assetRepo.GetForUpdate(assetID)
			if err != nil {
				return err
			}
			if asset == nil {
				return domain.ErrNotFound
			}
			if asset.CompanyID != companyID {
				return domain.ErrForbidden
			}
			if asset.Disposed() {
				return domain.ErrAssetDisposed
			}
			now := time.Now()
			asset.DisposedAt = &now
			asset.UpdatedAt = now
			if err := assetRepo.MarkDisposed(asset); err != nil {
				return err
			}
			disposed = asset
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toAssetResponse(disposed)
	return &resp, nil
}

// RunDepreciation corre el cierre de depreciación del período para los activos
// indicados (o todos los depreciables de la empresa). Paralelo entre activos,
// serializado por activo; repetir el período sin force es un no-op.
func (uc *AssetsUseCase) RunDepreciation(ctx context.Context, companyID string, in dto.BatchRunRequest) (*dto.BatchRunResponse, error) {
	period, err := ledger.ParsePeriod(in.Period)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ids := in.EntityIDs
	if len(ids) == 0 {
		ids, err = uc.assetRepo.ListDepreciableIDs(companyID)
		if err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("period", period.String()).Int("assets", len(ids)).Bool("force", in.Force).Msg("inicia cierre de depreciación")
	result := ledger.RunBatch(ctx, period, ids, uc.locks, func(ctx context.Context, assetID string) error {
		return uc.depreciateAsset(ctx, companyID, assetID, period, in.Force)
	})
	uc.log.Info().Str("period", period.String()).Int("processed", result.Processed).Int("skipped", result.Skipped).Int("failures", len(result.Failures)).Msg("cierre de depreciación terminado")

	resp := &dto.BatchRunResponse{
		Period:    result.Period.String(),
		Processed: result.Processed,
		Skipped:   result.Skipped,
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, dto.BatchFailureItem{EntityID: f.EntityID, Error: f.Err.Error()})
	}
	return resp, nil
}

// depreciateAsset aplica la cuota del período a un activo en su propia
// transacción: entrada en el ledger y acumulado materializado juntos.
func (uc *AssetsUseCase) depreciateAsset(ctx context.Context, companyID, assetID string, period ledger.Period, force bool) error {
	return uc.txRunner.RunAssets(ctx, func(
		assetRepo repository.AssetRepository,
		depRepo repository.DepreciationRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if asset.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if asset.Disposed() {
			return domain.ErrAssetDisposed
		}

		accumulated := asset.AccumulatedDep
		prev, err := depRepo.Get(assetID, period.String())
		if err != nil {
			return err
		}
		if prev != nil {
			if !force {
				return domain.ErrDuplicatePeriod
			}
			// Con force la cuota se recalcula desde el acumulado previo a
			// la entrada que se va a superseder
			accumulated = accumulated.Sub(prev.Amount)
		}

		quota := assets.NextQuota(asset.DepreciableBase(), accumulated, asset.MonthlyDepreciation)
		if quota.IsZero() {
			return fmt.Errorf("activo %s totalmente depreciado: %w", assetID, domain.ErrDuplicatePeriod)
		}

		newAccumulated := accumulated.Add(quota)
		entry := &entity.DepreciationEntry{
			ID:               uuid.New().String(),
			AssetID:          assetID,
			Period:           period.String(),
			Amount:           quota,
			AccumulatedAfter: newAccumulated,
			BookValueAfter:   asset.AcquisitionCost.Sub(newAccumulated),
			CreatedAt:        time.Now(),
		}
		if err := depRepo.Save(entry, force); err != nil {
			return err
		}
		asset.AccumulatedDep = newAccumulated
		asset.UpdatedAt = entry.CreatedAt
		return assetRepo.UpdateAccumulated(asset)
	})
}

// GetAsset devuelve un activo con sus agregados derivados.
func (uc *AssetsUseCase) GetAsset(companyID, assetID string) (*dto.AssetResponse, error) {
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if asset.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	resp := toAssetResponse(asset)
	return &resp, nil
}

// ListAssets lista los activos de la empresa.
func (uc *AssetsUseCase) ListAssets(companyID string, page dto.PageRequest) ([]dto.AssetResponse, error) {
	page.DefaultPage()
	list, err := uc.assetRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssetResponse(a))
	}
	return out, nil
}

// GetDepreciationEntry devuelve la entrada activa de un activo para un período.
func (uc *AssetsUseCase) GetDepreciationEntry(companyID, assetID, period string) (*dto.DepreciationEntryResponse, error) {
	if _, err := ledger.ParsePeriod(period); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.GetAsset(companyID, assetID); err != nil {
		return nil, err
	}
	entry, err := uc.depRepo.Get(assetID, period)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	resp := toDepreciationResponse(entry)
	return &resp, nil
}

// ListDepreciation devuelve el plan de depreciación ejecutado de un activo.
func (uc *AssetsUseCase) ListDepreciation(companyID, assetID string) ([]dto.DepreciationEntryResponse, error) {
	if _, err := uc.GetAsset(companyID, assetID); err != nil {
		return nil, err
	}
	entries, err := uc.depRepo.ListByAsset(assetID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepreciationEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDepreciationResponse(e))
	}
	return out, nil
}

func toAssetResponse(a *entity.Asset) dto.AssetResponse {
	return dto.AssetResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Code:                a.Code,
		AcquisitionCost:     a.AcquisitionCost,
		ResidualValue:       a.ResidualValue,
		UsefulLifeMonths:    a.UsefulLifeMonths,
		MonthlyDepreciation: a.MonthlyDepreciation,
		AccumulatedDep:      a.AccumulatedDep,
		BookValue:           a.BookValue(),
		AcquisitionDate:     a.AcquisitionDate.Format("2006-01-02"),
		Disposed:            a.Disposed(),
		FullyDepreciated:    a.FullyDepreciated(),
		CreatedAt:           a.CreatedAt,
	}
}

func toDepreciationResponse(e *entity.DepreciationEntry) dto.DepreciationEntryResponse {
	return dto.DepreciationEntryResponse{
		AssetID:          e.AssetID,
		Period:           e.Period,
		Amount:           e.Amount,
		AccumulatedAfter: e.AccumulatedAfter,
		BookValueAfter:   e.BookValueAfter,
		CreatedAt:        e.CreatedAt,
		Superseded:       e.SupersededAt != nil,
	}
}
