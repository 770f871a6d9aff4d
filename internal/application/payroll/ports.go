package payroll

import (
	"context"

	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de nómina atados a esa tx.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(
		employeeRepo repository.EmployeeRepository,
		payrollRepo repository.PayrollRepository,
	) error) error
}
