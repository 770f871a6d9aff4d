// Package analytics contiene el caso de uso del dashboard: totales de activos,
// inventario y nómina calculados al vuelo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// DashboardUseCase genera el resumen de la empresa: sumas puras sobre el
// estado actual de las entidades, nunca almacenadas aparte.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
// Con period vacío usa el mes en curso para los totales de nómina.
//
// Tres llamadas en paralelo:
//  1. GetAssetTotals     → totales de activos fijos
//  2. GetInventoryTotals → totales del kardex
//  3. GetPayrollTotals   → totales de nómina del período
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID, period string) (*dto.DashboardSummaryDTO, error) {
	if period == "" {
		period = ledger.PeriodOf(time.Now()).String()
	} else if _, err := ledger.ParsePeriod(period); err != nil {
		return nil, domain.ErrInvalidInput
	}

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type assetResult struct {
		totals repository.AssetTotals
		err    error
	}
	type inventoryResult struct {
		totals repository.InventoryTotals
		err    error
	}
	type payrollResult struct {
		totals repository.PayrollTotals
		err    error
	}

	assetCh := make(chan assetResult, 1)
	invCh := make(chan inventoryResult, 1)
	payCh := make(chan payrollResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetAssetTotals(ctx, companyID)
		assetCh <- assetResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetInventoryTotals(ctx, companyID)
		invCh <- inventoryResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.GetPayrollTotals(ctx, companyID, period)
		payCh <- payrollResult{t, err}
	}()

	assets := <-assetCh
	inventory := <-invCh
	payroll := <-payCh

	if assets.err != nil {
		return nil, fmt.Errorf("dashboard: totales de activos: %w", assets.err)
	}
	if inventory.err != nil {
		return nil, fmt.Errorf("dashboard: totales de inventario: %w", inventory.err)
	}
	if payroll.err != nil {
		return nil, fmt.Errorf("dashboard: totales de nómina: %w", payroll.err)
	}

	return &dto.DashboardSummaryDTO{
		AssetCount:          assets.totals.Count,
		TotalCost:           assets.totals.TotalCost,
		TotalAccumulatedDep: assets.totals.TotalAccumDep,
		BookValueTotal:      assets.totals.TotalBookValue,
		FullyDepreciated:    assets.totals.FullyDepreciated,
		LotCount:            inventory.totals.LotCount,
		TotalRemaining:      inventory.totals.TotalRemaining,
		InventoryValue:      inventory.totals.TotalValue,
		ExpiredLots:         inventory.totals.ExpiredLots,
		PayrollPeriod:       period,
		Employees:           payroll.totals.Employees,
		PayrollGross:        payroll.totals.TotalGross,
		PayrollIESS:         payroll.totals.TotalStatutory,
		PayrollNet:          payroll.totals.TotalNet,
	}, nil
}
