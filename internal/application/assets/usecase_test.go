package assets_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appassets "github.com/KingHansX/EContable-sub001/internal/application/assets"
	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
	"github.com/KingHansX/EContable-sub001/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	assets map[string]*entity.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*entity.Asset)}
}

func (r *fakeAssetRepo) Create(a *entity.Asset) error {
	r.assets[a.ID] = a
	return nil
}

func (r *fakeAssetRepo) GetByID(id string) (*entity.Asset, error)      { return r.assets[id], nil }
func (r *fakeAssetRepo) GetForUpdate(id string) (*entity.Asset, error) { return r.assets[id], nil }

func (r *fakeAssetRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) ListDepreciableIDs(companyID string) ([]string, error) {
	var out []string
	for _, a := range r.assets {
		if a.CompanyID == companyID && !a.Disposed() && !a.FullyDepreciated() {
			out = append(out, a.ID)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) UpdateAccumulated(a *entity.Asset) error {
	r.assets[a.ID] = a
	return nil
}

func (r *fakeAssetRepo) MarkDisposed(a *entity.Asset) error {
	r.assets[a.ID] = a
	return nil
}

type fakeDepRepo struct {
	active  map[string]*entity.DepreciationEntry // assetID|period → entrada activa
	history []*entity.DepreciationEntry
}

func newFakeDepRepo() *fakeDepRepo {
	return &fakeDepRepo{active: make(map[string]*entity.DepreciationEntry)}
}

func (r *fakeDepRepo) Save(e *entity.DepreciationEntry, force bool) error {
	key := e.AssetID + "|" + e.Period
	if prev, ok := r.active[key]; ok {
		if !force {
			return domain.ErrDuplicatePeriod
		}
		now := time.Now()
		prev.SupersededAt = &now
	}
	r.active[key] = e
	r.history = append(r.history, e)
	return nil
}

func (r *fakeDepRepo) Get(assetID, period string) (*entity.DepreciationEntry, error) {
	return r.active[assetID+"|"+period], nil
}

func (r *fakeDepRepo) ListByAsset(assetID string) ([]*entity.DepreciationEntry, error) {
	var out []*entity.DepreciationEntry
	for _, e := range r.history {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAssetsTxRunner struct {
	assetRepo *fakeAssetRepo
	depRepo   *fakeDepRepo
}

func (r *fakeAssetsTxRunner) RunAssets(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	depRepo repository.DepreciationRepository,
) error) error {
	return fn(r.assetRepo, r.depRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "comp-1"

type assetsEnv struct {
	uc        *appassets.AssetsUseCase
	assetRepo *fakeAssetRepo
	depRepo   *fakeDepRepo
}

func newAssetsEnv(t *testing.T) *assetsEnv {
	t.Helper()
	env := &assetsEnv{
		assetRepo: newFakeAssetRepo(),
		depRepo:   newFakeDepRepo(),
	}
	runner := &fakeAssetsTxRunner{assetRepo: env.assetRepo, depRepo: env.depRepo}
	log := logger.New(logger.Config{Level: "disabled"})
	env.uc = appassets.NewAssetsUseCase(runner, env.assetRepo, env.depRepo, ledger.NewEntityLocks(), log)
	return env
}

func (e *assetsEnv) register(t *testing.T, cost, residual int64, lifeMonths int) *dto.AssetResponse {
	t.Helper()
	resp, err := e.uc.RegisterAsset(testCompanyID, dto.CreateAssetRequest{
		Name:             "Camioneta de reparto",
		AcquisitionCost:  decimal.NewFromInt(cost),
		ResidualValue:    decimal.NewFromInt(residual),
		UsefulLifeMonths: lifeMonths,
		AcquisitionDate:  "2026-01-15",
	})
	require.NoError(t, err)
	return resp
}

func (e *assetsEnv) run(t *testing.T, period string, force bool, ids ...string) *dto.BatchRunResponse {
	t.Helper()
	resp, err := e.uc.RunDepreciation(context.Background(), testCompanyID, dto.BatchRunRequest{
		Period:    period,
		Force:     force,
		EntityIDs: ids,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y baja
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAsset_FijaLaCuotaMensual(t *testing.T) {
	env := newAssetsEnv(t)

	resp := env.register(t, 5000, 500, 36)

	// (5000 - 500) / 36 = 125.00
	assert.True(t, resp.MonthlyDepreciation.Equal(decimal.NewFromInt(125)))
	assert.True(t, resp.AccumulatedDep.IsZero())
	assert.True(t, resp.BookValue.Equal(decimal.NewFromInt(5000)))
	assert.False(t, resp.Disposed)
}

func TestRegisterAsset_ParametrosInvalidos(t *testing.T) {
	env := newAssetsEnv(t)

	_, err := env.uc.RegisterAsset(testCompanyID, dto.CreateAssetRequest{
		Name:             "Activo roto",
		AcquisitionCost:  decimal.NewFromInt(1000),
		ResidualValue:    decimal.NewFromInt(1500), // residual > costo
		UsefulLifeMonths: 12,
		AcquisitionDate:  "2026-01-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDispose_EsTerminal(t *testing.T) {
	env := newAssetsEnv(t)
	asset := env.register(t, 1200, 0, 12)

	resp, err := env.uc.Dispose(context.Background(), testCompanyID, asset.ID)
	require.NoError(t, err)
	assert.True(t, resp.Disposed)

	_, err = env.uc.Dispose(context.Background(), testCompanyID, asset.ID)
	assert.ErrorIs(t, err, domain.ErrAssetDisposed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre de depreciación
// ──────────────────────────────────────────────────────────────────────────────

func TestRunDepreciation_AplicaLaCuotaYMaterializa(t *testing.T) {
	env := newAssetsEnv(t)
	asset := env.register(t, 1200, 0, 12)

	resp := env.run(t, "2026-01", false)
	assert.Equal(t, 1, resp.Processed)

	entry, err := env.uc.GetDepreciationEntry(testCompanyID, asset.ID, "2026-01")
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, entry.AccumulatedAfter.Equal(decimal.NewFromInt(100)))
	assert.True(t, entry.BookValueAfter.Equal(decimal.NewFromInt(1100)))

	got, err := env.uc.GetAsset(testCompanyID, asset.ID)
	require.NoError(t, err)
	assert.True(t, got.AccumulatedDep.Equal(decimal.NewFromInt(100)), "el acumulado materializado sigue al ledger")
}

func TestRunDepreciation_MismoPeriodoSinForceEsNoOp(t *testing.T) {
	env := newAssetsEnv(t)
	asset := env.register(t, 1200, 0, 12)

	env.run(t, "2026-01", false)
	resp := env.run(t, "2026-01", false)

	assert.Zero(t, resp.Processed)
	assert.Equal(t, 1, resp.Skipped, "re-ejecutar el período es un no-op, nunca doble cuota")

	got, _ := env.uc.GetAsset(testCompanyID, asset.ID)
	assert.True(t, got.AccumulatedDep.Equal(decimal.NewFromInt(100)))
}

func TestRunDepreciation_ForceSupersedeSinDuplicarAcumulado(t *testing.T) {
	env := newAssetsEnv(t)
	asset := env.register(t, 1200, 0, 12)

	env.run(t, "2026-01", false)
	resp := env.run(t, "2026-01", true)
	assert.Equal(t, 1, resp.Processed)

	// La cuota se recalcula desde el acumulado previo a la entrada superseded
	got, _ := env.uc.GetAsset(testCompanyID, asset.ID)
	assert.True(t, got.AccumulatedDep.Equal(decimal.NewFromInt(100)),
		"force reemplaza la cuota del período, no la apila")

	entries, err := env.uc.ListDepreciation(testCompanyID, asset.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Superseded)
	assert.False(t, entries[1].Superseded)
}

func TestRunDepreciation_VidaCompletaAlcanzaLaBaseExacta(t *testing.T) {
	env := newAssetsEnv(t)
	asset := env.register(t, 1200, 0, 12)

	period := ledger.Period{Year: 2026, Month: time.January}
	for i := 0; i < 12; i++ {
		env.run(t, period.String(), false)
		period = period.Next()
	}

	got, _ := env.uc.GetAsset(testCompanyID, asset.ID)
	assert.True(t, got.AccumulatedDep.Equal(decimal.NewFromInt(1200)))
	assert.True(t, got.BookValue.IsZero())
	assert.True(t, got.FullyDepreciated)

	// El mes 13 no aplica nada: el activo sale del alcance del cierre
	resp := env.run(t, period.String(), false)
	assert.Zero(t, resp.Processed)
}

func TestRunDepreciation_UltimaCuotaConTope(t *testing.T) {
	env := newAssetsEnv(t)
	// 1000 / 12 = 83.33; tras 12 meses 999.96 y el mes 13 aplica el residuo 0.04
	asset := env.register(t, 1000, 0, 12)

	period := ledger.Period{Year: 2026, Month: time.January}
	for i := 0; i < 13; i++ {
		env.run(t, period.String(), false, asset.ID)
		period = period.Next()
	}

	entries, err := env.uc.ListDepreciation(testCompanyID, asset.ID)
	require.NoError(t, err)
	require.Len(t, entries, 13)
	last := entries[len(entries)-1]
	assert.True(t, last.Amount.Equal(decimal.NewFromFloat(0.04)), "la última cuota es el residuo, no la cuota completa")
	assert.True(t, last.AccumulatedAfter.Equal(decimal.NewFromInt(1000)))

	got, _ := env.uc.GetAsset(testCompanyID, asset.ID)
	assert.True(t, got.BookValue.IsZero())
}

func TestRunDepreciation_ActivoDadoDeBajaFalla(t *testing.T) {
	env := newAssetsEnv(t)
	asset := env.register(t, 1200, 0, 12)
	_, err := env.uc.Dispose(context.Background(), testCompanyID, asset.ID)
	require.NoError(t, err)

	resp := env.run(t, "2026-01", false, asset.ID)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, asset.ID, resp.Failures[0].EntityID)
	assert.Contains(t, resp.Failures[0].Error, domain.ErrAssetDisposed.Error())
}

func TestRunDepreciation_ParaleloEntreActivosSerializadoPorActivo(t *testing.T) {
	env := newAssetsEnv(t)
	var ids []string
	for i := 0; i < 20; i++ {
		a, err := env.uc.RegisterAsset(testCompanyID, dto.CreateAssetRequest{
			Name:             fmt.Sprintf("Equipo %02d", i),
			AcquisitionCost:  decimal.NewFromInt(1200),
			UsefulLifeMonths: 12,
			AcquisitionDate:  "2026-01-15",
		})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	resp := env.run(t, "2026-01", false)
	assert.Equal(t, 20, resp.Processed)
	for _, id := range ids {
		got, _ := env.uc.GetAsset(testCompanyID, id)
		assert.True(t, got.AccumulatedDep.Equal(decimal.NewFromInt(100)), "exactamente una cuota por activo")
	}
}
