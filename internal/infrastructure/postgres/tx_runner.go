package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KingHansX/EContable-sub001/internal/application/assets"
	"github.com/KingHansX/EContable-sub001/internal/application/kardex"
	"github.com/KingHansX/EContable-sub001/internal/application/payroll"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de cada módulo.
var _ kardex.TxRunner = (*TxRunner)(nil)
var _ assets.TxRunner = (*TxRunner)(nil)
var _ payroll.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del kardex atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.LotMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLotRepository(tx), NewLotMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunClose inicia una transacción para el corte mensual de un lote.
func (r *TxRunner) RunClose(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.LotMovementRepository,
	snapRepo repository.LotSnapshotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLotRepository(tx), NewLotMovementRepository(tx), NewLotSnapshotRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAssets inicia una transacción con los repos de activos fijos.
func (r *TxRunner) RunAssets(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	depRepo repository.DepreciationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAssetRepository(tx), NewDepreciationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPayroll inicia una transacción con los repos de nómina.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(
	employeeRepo repository.EmployeeRepository,
	payrollRepo repository.PayrollRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEmployeeRepository(tx), NewPayrollRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
