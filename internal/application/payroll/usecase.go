package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/payroll"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
	"github.com/KingHansX/EContable-sub001/pkg/logger"
)

// PayrollUseCase administra empleados y la generación mensual del rol de pagos.
// Un rol activo por (empleado, período); regenerar exige force y supersede el
// anterior.
type PayrollUseCase struct {
	txRunner         TxRunner
	employeeRepo     repository.EmployeeRepository
	payrollRepo      repository.PayrollRepository
	locks            *ledger.EntityLocks
	contributionRate decimal.Decimal
	log              *logger.Logger
}

// NewPayrollUseCase construye el caso de uso. contributionRate es la tasa del
// aporte personal IESS (configuración, no por empleado).
func NewPayrollUseCase(
	txRunner TxRunner,
	employeeRepo repository.EmployeeRepository,
	payrollRepo repository.PayrollRepository,
	locks *ledger.EntityLocks,
	contributionRate decimal.Decimal,
	log *logger.Logger,
) *PayrollUseCase {
	return &PayrollUseCase{
		txRunner:         txRunner,
		employeeRepo:     employeeRepo,
		payrollRepo:      payrollRepo,
		locks:            locks,
		contributionRate: contributionRate,
		log:              log.Component("payroll"),
	}
}

// RegisterEmployee da de alta un empleado activo.
func (uc *PayrollUseCase) RegisterEmployee(companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" || in.Identification == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BaseSalary.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	hireDate, err := time.Parse("2006-01-02", in.HireDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	employee := &entity.Employee{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		Identification: in.Identification,
		Position:       in.Position,
		BaseSalary:     in.BaseSalary,
		HireDate:       hireDate,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// SetEmployeeActive activa o desactiva un empleado. Un empleado inactivo sale
// del alcance de la nómina pero conserva su historial de roles.
func (uc *PayrollUseCase) SetEmployeeActive(companyID, employeeID string, active bool) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if err := uc.employeeRepo.SetActive(employeeID, active); err != nil {
		return nil, err
	}
	employee.Active = active
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// GetEmployee devuelve un empleado.
func (uc *PayrollUseCase) GetEmployee(companyID, employeeID string) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

// ListEmployees lista los empleados de la empresa.
func (uc *PayrollUseCase) ListEmployees(companyID string, onlyActive bool, page dto.PageRequest) ([]dto.EmployeeResponse, error) {
	page.DefaultPage()
	list, err := uc.employeeRepo.ListByCompany(companyID, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// GeneratePayroll genera el rol del período para un empleado, o para todos los
// activos de la empresa si EmployeeID viene vacío. Con alcance de empresa los
// componentes variables (horas extra, bonos, anticipos) aplican por igual a
// cada empleado; para montos individuales se genera por empleado.
func (uc *PayrollUseCase) GeneratePayroll(ctx context.Context, companyID, userID string, in dto.GeneratePayrollRequest) (*dto.BatchRunResponse, error) {
	period, err := ledger.ParsePeriod(in.Period)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Overtime.IsNegative() || in.Bonuses.IsNegative() || in.Advances.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var ids []string
	if in.EmployeeID != "" {
		ids = []string{in.EmployeeID}
	} else {
		ids, err = uc.employeeRepo.ListActiveIDs(companyID)
		if err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("period", period.String()).Int("employees", len(ids)).Bool("force", in.Force).Msg("inicia generación de nómina")
	result := ledger.RunBatch(ctx, period, ids, uc.locks, func(ctx context.Context, employeeID string) error {
		return uc.generateRun(ctx, companyID, userID, employeeID, period, in)
	})
	uc.log.Info().Str("period", period.String()).Int("processed", result.Processed).Int("skipped", result.Skipped).Int("failures", len(result.Failures)).Msg("generación de nómina terminada")

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

// generateRun calcula y persiste el rol de un empleado en su propia transacción.
func (uc *PayrollUseCase) generateRun(ctx context.Context, companyID, userID, employeeID string, period ledger.Period, in dto.GeneratePayrollRequest) error {
	return uc.txRunner.RunPayroll(ctx, func(
		employeeRepo repository.EmployeeRepository,
		payrollRepo repository.PayrollRepository,
	) error {
		employee, err := employeeRepo.GetForUpdate(employeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrNotFound
		}
		if employee.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !employee.Active {
			return domain.ErrEmployeeInactive
		}

		result, err := payroll.Compute(payroll.Inputs{
			BaseSalary:       employee.BaseSalary,
			Overtime:         in.Overtime,
			Bonuses:          in.Bonuses,
			Advances:         in.Advances,
			ContributionRate: uc.contributionRate,
		})
		if err != nil {
			return err
		}

		run := &entity.PayrollRun{
			ID:                    uuid.New().String(),
			EmployeeID:            employeeID,
			Period:                period.String(),
			BaseSalary:            employee.BaseSalary,
			Overtime:              in.Overtime,
			Bonuses:               in.Bonuses,
			GrossPay:              result.GrossPay,
			StatutoryContribution: result.StatutoryContribution,
			Advances:              in.Advances,
			TotalDeductions:       result.TotalDeductions,
			NetPay:                result.NetPay,
			CreatedAt:             time.Now(),
			CreatedBy:             userID,
		}
		return payrollRepo.Save(run, in.Force)
	})
}

// GetPayrollRun devuelve el rol activo de un empleado para un período.
func (uc *PayrollUseCase) GetPayrollRun(companyID, employeeID, period string) (*dto.PayrollRunResponse, error) {
	if _, err := ledger.ParsePeriod(period); err != nil {
		return nil, domain.ErrInvalidInput
	}
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	run, err := uc.payrollRepo.Get(employeeID, period)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPayrollRunResponse(run, employee.Name)
	return &resp, nil
}

// ListPayrollRuns lista los roles activos de la empresa para un período.
func (uc *PayrollUseCase) ListPayrollRuns(companyID, period string) ([]dto.PayrollRunResponse, error) {
	if _, err := ledger.ParsePeriod(period); err != nil {
		return nil, domain.ErrInvalidInput
	}
	runs, err := uc.payrollRepo.ListByPeriod(companyID, period)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PayrollRunResponse, 0, len(runs))
	for _, r := range runs {
		name := ""
		if e, err := uc.employeeRepo.GetByID(r.EmployeeID); err == nil && e != nil {
			name = e.Name
		}
		out = append(out, toPayrollRunResponse(r, name))
	}
	return out, nil
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		Identification: e.Identification,
		Position:       e.Position,
		BaseSalary:     e.BaseSalary,
		HireDate:       e.HireDate.Format("2006-01-02"),
		Active:         e.Active,
		CreatedAt:      e.CreatedAt,
	}
}

func toPayrollRunResponse(r *entity.PayrollRun, employeeName string) dto.PayrollRunResponse {
	return dto.PayrollRunResponse{
		ID:                    r.ID,
		EmployeeID:            r.EmployeeID,
		EmployeeName:          employeeName,
		Period:                r.Period,
		BaseSalary:            r.BaseSalary,
		Overtime:              r.Overtime,
		Bonuses:               r.Bonuses,
		GrossPay:              r.GrossPay,
		StatutoryContribution: r.StatutoryContribution,
		Advances:              r.Advances,
		TotalDeductions:       r.TotalDeductions,
		NetPay:                r.NetPay,
		CreatedAt:             r.CreatedAt,
		Superseded:            r.SupersededAt != nil,
	}
}
