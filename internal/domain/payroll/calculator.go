// Package payroll contiene el cálculo puro del rol de pagos mensual:
// ingreso bruto, aporte personal IESS y neto a recibir.
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/domain"
)

// Inputs son los componentes del período, todos no negativos.
// ContributionRate es la tasa del aporte personal (IESS: 0.0945).
type Inputs struct {
	BaseSalary       decimal.Decimal
	Overtime         decimal.Decimal
	Bonuses          decimal.Decimal
	Advances         decimal.Decimal
	ContributionRate decimal.Decimal
}

// Result son los agregados derivados del rol.
// Invariantes: NetPay = GrossPay - TotalDeductions;
// TotalDeductions >= StatutoryContribution cuando GrossPay > 0.
type Result struct {
	GrossPay              decimal.Decimal
	StatutoryContribution decimal.Decimal
	TotalDeductions       decimal.Decimal
	NetPay                decimal.Decimal
}

// Compute deriva el rol de pagos. El aporte se redondea con redondeo bancario
// a 2 decimales. Si los descuentos superan el bruto retorna
// domain.ErrNegativeNetPay: el caller debe reducir anticipos y reintentar.
func Compute(in Inputs) (Result, error) {
	if in.BaseSalary.IsNegative() || in.Overtime.IsNegative() ||
		in.Bonuses.IsNegative() || in.Advances.IsNegative() {
		return Result{}, domain.ErrInvalidInput
	}
	if in.ContributionRate.IsNegative() || in.ContributionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Result{}, domain.ErrInvalidInput
	}

	gross := in.BaseSalary.Add(in.Overtime).Add(in.Bonuses)

	// Aporte obligatorio siempre que haya ingreso gravable.
	statutory := decimal.Zero
	if gross.GreaterThan(decimal.Zero) {
		statutory = gross.Mul(in.ContributionRate).RoundBank(2)
	}

	deductions := statutory.Add(in.Advances)
	net := gross.Sub(deductions)
	if net.IsNegative() {
		return Result{}, domain.ErrNegativeNetPay
	}

	return Result{
		GrossPay:              gross,
		StatutoryContribution: statutory,
		TotalDeductions:       deductions,
		NetPay:                net,
	}, nil
}
