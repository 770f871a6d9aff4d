package repository

import "github.com/KingHansX/EContable-sub001/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para empleados.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetForUpdate(id string) (*entity.Employee, error)
	ListByCompany(companyID string, onlyActive bool, limit, offset int) ([]*entity.Employee, error)
	// ListActiveIDs devuelve los ids de empleados activos (alcance de una corrida de nómina).
	ListActiveIDs(companyID string) ([]string, error)
	SetActive(id string, active bool) error
}

// PayrollRepository define el puerto para los roles de pago.
type PayrollRepository interface {
	// Save inserta el rol del período. Con force marca el activo previo como
	// superseded (misma tx); sin force y con rol previo retorna
	// domain.ErrDuplicatePeriod.
	Save(run *entity.PayrollRun, force bool) error
	Get(employeeID, period string) (*entity.PayrollRun, error)
	GetByID(id string) (*entity.PayrollRun, error)
	ListByPeriod(companyID, period string) ([]*entity.PayrollRun, error)
}
