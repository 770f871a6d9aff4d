package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)
var _ repository.DepreciationRepository = (*DepreciationRepo)(nil)

const assetColumns = `id, company_id, name, code, acquisition_cost, residual_value, useful_life_months,
	monthly_depreciation, accumulated_dep, acquisition_date, disposed_at, created_at, updated_at`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos fijos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un activo nuevo.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.CompanyID, asset.Name, asset.Code, asset.AcquisitionCost,
		asset.ResidualValue, asset.UsefulLifeMonths, asset.MonthlyDepreciation,
		asset.AccumulatedDep, asset.AcquisitionDate, asset.DisposedAt,
		asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el activo y bloquea su fila (SELECT FOR UPDATE).
func (r *AssetRepo) GetForUpdate(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByCompany lista activos por empresa con paginación.
func (r *AssetRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Asset, error) {
	query := `
		SELECT ` + assetColumns + ` FROM assets
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAssetRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListDepreciableIDs devuelve los ids de activos no dados de baja y con base
// depreciable pendiente (alcance de un cierre de depreciación).
func (r *AssetRepo) ListDepreciableIDs(companyID string) ([]string, error) {
	query := `
		SELECT id FROM assets
		WHERE company_id = $1
		  AND disposed_at IS NULL
		  AND accumulated_dep < acquisition_cost - residual_value
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list depreciable asset ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan asset id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateAccumulated materializa la depreciación acumulada (misma tx que la entrada).
func (r *AssetRepo) UpdateAccumulated(asset *entity.Asset) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE assets SET accumulated_dep = $2, updated_at = $3 WHERE id = $1`,
		asset.ID, asset.AccumulatedDep, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset accumulated: %w", err)
	}
	return nil
}

// MarkDisposed registra la baja del activo (estado terminal).
func (r *AssetRepo) MarkDisposed(asset *entity.Asset) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE assets SET disposed_at = $2, updated_at = $3 WHERE id = $1`,
		asset.ID, asset.DisposedAt, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("mark asset disposed: %w", err)
	}
	return nil
}

func (r *AssetRepo) scanOne(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.Name, &a.Code, &a.AcquisitionCost,
		&a.ResidualValue, &a.UsefulLifeMonths, &a.MonthlyDepreciation,
		&a.AccumulatedDep, &a.AcquisitionDate, &a.DisposedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

func scanAssetRow(rows pgx.Rows) (*entity.Asset, error) {
	var a entity.Asset
	if err := rows.Scan(&a.ID, &a.CompanyID, &a.Name, &a.Code, &a.AcquisitionCost,
		&a.ResidualValue, &a.UsefulLifeMonths, &a.MonthlyDepreciation,
		&a.AccumulatedDep, &a.AcquisitionDate, &a.DisposedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	return &a, nil
}

// DepreciationRepo implementación del ledger de depreciación. Las entradas son
// a la vez el snapshot del período: el índice parcial único sobre
// (asset_id, period) WHERE superseded_at IS NULL evita la doble cuota.
type DepreciationRepo struct {
	q Querier
}

// NewDepreciationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepreciationRepository(q Querier) *DepreciationRepo {
	return &DepreciationRepo{q: q}
}

// Save inserta la entrada del período. Con force marca la activa previa como
// superseded antes de insertar; sin force la violación del índice parcial se
// traduce a domain.ErrDuplicatePeriod.
func (r *DepreciationRepo) Save(entry *entity.DepreciationEntry, force bool) error {
	ctx := context.Background()
	if force {
		_, err := r.q.Exec(ctx,
			`UPDATE depreciation_entries SET superseded_at = now()
			 WHERE asset_id = $1 AND period = $2 AND superseded_at IS NULL`,
			entry.AssetID, entry.Period,
		)
		if err != nil {
			return fmt.Errorf("supersede depreciation entry: %w", err)
		}
	}
	query := `
		INSERT INTO depreciation_entries (id, asset_id, period, amount, accumulated_after, book_value_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.AssetID, entry.Period, entry.Amount,
		entry.AccumulatedAfter, entry.BookValueAfter, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePeriod
		}
		return fmt.Errorf("insert depreciation entry: %w", err)
	}
	return nil
}

// Get obtiene la entrada activa de un activo para un período.
func (r *DepreciationRepo) Get(assetID, period string) (*entity.DepreciationEntry, error) {
	query := `
		SELECT id, asset_id, period, amount, accumulated_after, book_value_after, created_at, superseded_at
		FROM depreciation_entries
		WHERE asset_id = $1 AND period = $2 AND superseded_at IS NULL`
	var e entity.DepreciationEntry
	err := r.q.QueryRow(context.Background(), query, assetID, period).Scan(
		&e.ID, &e.AssetID, &e.Period, &e.Amount, &e.AccumulatedAfter,
		&e.BookValueAfter, &e.CreatedAt, &e.SupersededAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depreciation entry: %w", err)
	}
	return &e, nil
}

// ListByAsset lista el historial completo de depreciación de un activo,
// incluidas las entradas superseded.
func (r *DepreciationRepo) ListByAsset(assetID string) ([]*entity.DepreciationEntry, error) {
	query := `
		SELECT id, asset_id, period, amount, accumulated_after, book_value_after, created_at, superseded_at
		FROM depreciation_entries
		WHERE asset_id = $1
		ORDER BY period ASC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, assetID)
	if err != nil {
		return nil, fmt.Errorf("list depreciation entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.DepreciationEntry
	for rows.Next() {
		var e entity.DepreciationEntry
		if err := rows.Scan(&e.ID, &e.AssetID, &e.Period, &e.Amount, &e.AccumulatedAfter,
			&e.BookValueAfter, &e.CreatedAt, &e.SupersededAt); err != nil {
			return nil, fmt.Errorf("scan depreciation entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
