package postgres

import (
	"context"
	"fmt"

	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados para el dashboard.
// Los totales son sumas puras sobre el estado actual, nunca se almacenan.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Normalmente se usa con el pool.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetAssetTotals suma costo, depreciación acumulada y valor en libros de los
// activos no dados de baja.
func (r *AnalyticsRepo) GetAssetTotals(ctx context.Context, companyID string) (repository.AssetTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(acquisition_cost), 0),
			COALESCE(SUM(accumulated_dep), 0),
			COALESCE(SUM(acquisition_cost - accumulated_dep), 0),
			COUNT(*) FILTER (WHERE accumulated_dep >= acquisition_cost - residual_value)
		FROM assets
		WHERE company_id = $1 AND disposed_at IS NULL`
	var t repository.AssetTotals
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&t.Count, &t.TotalCost, &t.TotalAccumDep, &t.TotalBookValue, &t.FullyDepreciated,
	)
	if err != nil {
		return repository.AssetTotals{}, fmt.Errorf("asset totals: %w", err)
	}
	return t, nil
}

// GetInventoryTotals suma remanentes y valor del inventario (remanente por el
// costo promedio del producto).
func (r *AnalyticsRepo) GetInventoryTotals(ctx context.Context, companyID string) (repository.InventoryTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(l.received_qty - l.consumed_qty), 0),
			COALESCE(SUM((l.received_qty - l.consumed_qty) * p.unit_cost), 0),
			COUNT(*) FILTER (WHERE l.expiration_date < CURRENT_DATE AND l.received_qty > l.consumed_qty)
		FROM lots l
		JOIN products p ON p.id = l.product_id
		WHERE l.company_id = $1`
	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&t.LotCount, &t.TotalRemaining, &t.TotalValue, &t.ExpiredLots,
	)
	if err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}

// GetPayrollTotals suma los roles activos del período.
func (r *AnalyticsRepo) GetPayrollTotals(ctx context.Context, companyID, period string) (repository.PayrollTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(p.gross_pay), 0),
			COALESCE(SUM(p.statutory_contribution), 0),
			COALESCE(SUM(p.net_pay), 0)
		FROM payroll_runs p
		JOIN employees e ON e.id = p.employee_id
		WHERE e.company_id = $1 AND p.period = $2 AND p.superseded_at IS NULL`
	var t repository.PayrollTotals
	err := r.q.QueryRow(ctx, query, companyID, period).Scan(
		&t.Employees, &t.TotalGross, &t.TotalStatutory, &t.TotalNet,
	)
	if err != nil {
		return repository.PayrollTotals{}, fmt.Errorf("payroll totals: %w", err)
	}
	return t, nil
}
