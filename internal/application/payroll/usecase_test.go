package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	apppayroll "github.com/KingHansX/EContable-sub001/internal/application/payroll"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
	"github.com/KingHansX/EContable-sub001/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*entity.Employee)}
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.employees[id], nil
}

func (r *fakeEmployeeRepo) GetForUpdate(id string) (*entity.Employee, error) {
	return r.employees[id], nil
}

func (r *fakeEmployeeRepo) ListByCompany(companyID string, onlyActive bool, limit, offset int) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.employees {
		if e.CompanyID != companyID {
			continue
		}
		if onlyActive && !e.Active {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListActiveIDs(companyID string) ([]string, error) {
	var out []string
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) SetActive(id string, active bool) error {
	if e, ok := r.employees[id]; ok {
		e.Active = active
	}
	return nil
}

type fakePayrollRepo struct {
	active  map[string]*entity.PayrollRun // employeeID|period → rol activo
	history []*entity.PayrollRun
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{active: make(map[string]*entity.PayrollRun)}
}

func (r *fakePayrollRepo) Save(run *entity.PayrollRun, force bool) error {
	key := run.EmployeeID + "|" + run.Period
	if prev, ok := r.active[key]; ok {
		if !force {
			return domain.ErrDuplicatePeriod
		}
		now := time.Now()
		prev.SupersededAt = &now
	}
	r.active[key] = run
	r.history = append(r.history, run)
	return nil
}

func (r *fakePayrollRepo) Get(employeeID, period string) (*entity.PayrollRun, error) {
	return r.active[employeeID+"|"+period], nil
}

func (r *fakePayrollRepo) GetByID(id string) (*entity.PayrollRun, error) {
	for _, run := range r.history {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, nil
}

func (r *fakePayrollRepo) ListByPeriod(companyID, period string) ([]*entity.PayrollRun, error) {
	var out []*entity.PayrollRun
	for _, run := range r.active {
		if run.Period == period {
			out = append(out, run)
		}
	}
	return out, nil
}

type fakePayrollTxRunner struct {
	employeeRepo *fakeEmployeeRepo
	payrollRepo  *fakePayrollRepo
}

func (r *fakePayrollTxRunner) RunPayroll(ctx context.Context, fn func(
	employeeRepo repository.EmployeeRepository,
	payrollRepo repository.PayrollRepository,
) error) error {
	return fn(r.employeeRepo, r.payrollRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "comp-1"
	testUserID    = "user-1"
)

// tasa del aporte personal IESS
var testRate = decimal.NewFromFloat(0.0945)

type payrollEnv struct {
	uc           *apppayroll.PayrollUseCase
	employeeRepo *fakeEmployeeRepo
	payrollRepo  *fakePayrollRepo
}

func newPayrollEnv(t *testing.T) *payrollEnv {
	t.Helper()
	env := &payrollEnv{
		employeeRepo: newFakeEmployeeRepo(),
		payrollRepo:  newFakePayrollRepo(),
	}
	runner := &fakePayrollTxRunner{employeeRepo: env.employeeRepo, payrollRepo: env.payrollRepo}
	log := logger.New(logger.Config{Level: "disabled"})
	env.uc = apppayroll.NewPayrollUseCase(runner, env.employeeRepo, env.payrollRepo, ledger.NewEntityLocks(), testRate, log)
	return env
}

func (e *payrollEnv) hire(t *testing.T, name string, salary int64) *dto.EmployeeResponse {
	t.Helper()
	resp, err := e.uc.RegisterEmployee(testCompanyID, dto.CreateEmployeeRequest{
		Name:           name,
		Identification: "1712345678",
		Position:       "Bodeguero",
		BaseSalary:     decimal.NewFromInt(salary),
		HireDate:       "2025-03-01",
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Generación del rol
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratePayroll_CalculaElRolDeReferencia(t *testing.T) {
	env := newPayrollEnv(t)
	emp := env.hire(t, "María Quishpe", 500)

	resp, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		EmployeeID: emp.ID,
		Period:     "2026-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)

	run, err := env.uc.GetPayrollRun(testCompanyID, emp.ID, "2026-08")
	require.NoError(t, err)
	// 500 * 0.0945 = 47.25; neto 452.75
	assert.True(t, run.GrossPay.Equal(decimal.NewFromInt(500)))
	assert.True(t, run.StatutoryContribution.Equal(decimal.NewFromFloat(47.25)))
	assert.True(t, run.NetPay.Equal(decimal.NewFromFloat(452.75)))
	assert.Equal(t, "María Quishpe", run.EmployeeName)
}

func TestGeneratePayroll_ComponentesVariables(t *testing.T) {
	env := newPayrollEnv(t)
	emp := env.hire(t, "Carlos Tipán", 800)

	_, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		EmployeeID: emp.ID,
		Period:     "2026-08",
		Overtime:   decimal.NewFromInt(120),
		Bonuses:    decimal.NewFromInt(80),
		Advances:   decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	run, err := env.uc.GetPayrollRun(testCompanyID, emp.ID, "2026-08")
	require.NoError(t, err)
	// bruto 1000; aporte 94.50; descuentos 244.50; neto 755.50
	assert.True(t, run.GrossPay.Equal(decimal.NewFromInt(1000)))
	assert.True(t, run.StatutoryContribution.Equal(decimal.NewFromFloat(94.5)))
	assert.True(t, run.TotalDeductions.Equal(decimal.NewFromFloat(244.5)))
	assert.True(t, run.NetPay.Equal(decimal.NewFromFloat(755.5)))
}

func TestGeneratePayroll_TodosLosActivos(t *testing.T) {
	env := newPayrollEnv(t)
	env.hire(t, "Empleado A", 500)
	env.hire(t, "Empleado B", 600)
	inactive := env.hire(t, "Empleado C", 700)
	_, err := env.uc.SetEmployeeActive(testCompanyID, inactive.ID, false)
	require.NoError(t, err)

	resp, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		Period: "2026-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Processed, "los inactivos quedan fuera del alcance")

	runs, err := env.uc.ListPayrollRuns(testCompanyID, "2026-08")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestGeneratePayroll_EmpleadoInactivoExplicitoFalla(t *testing.T) {
	env := newPayrollEnv(t)
	emp := env.hire(t, "Empleado D", 500)
	_, err := env.uc.SetEmployeeActive(testCompanyID, emp.ID, false)
	require.NoError(t, err)

	resp, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		EmployeeID: emp.ID,
		Period:     "2026-08",
	})
	require.NoError(t, err)
	require.Len(t, resp.Failures, 1)
	assert.Contains(t, resp.Failures[0].Error, domain.ErrEmployeeInactive.Error())
}

func TestGeneratePayroll_MismoPeriodoSinForceEsNoOp(t *testing.T) {
	env := newPayrollEnv(t)
	emp := env.hire(t, "Empleado E", 500)
	req := dto.GeneratePayrollRequest{EmployeeID: emp.ID, Period: "2026-08"}

	first, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Processed)

	second, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, req)
	require.NoError(t, err)
	assert.Zero(t, second.Processed)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, env.payrollRepo.history, 1, "sin force no se apila un segundo rol")
}

func TestGeneratePayroll_ForceRegeneraYSupersede(t *testing.T) {
	env := newPayrollEnv(t)
	emp := env.hire(t, "Empleado F", 500)

	_, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		EmployeeID: emp.ID,
		Period:     "2026-08",
	})
	require.NoError(t, err)

	// Regenerar con horas extra que faltaron en la primera corrida
	resp, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		EmployeeID: emp.ID,
		Period:     "2026-08",
		Overtime:   decimal.NewFromInt(100),
		Force:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Processed)

	run, err := env.uc.GetPayrollRun(testCompanyID, emp.ID, "2026-08")
	require.NoError(t, err)
	assert.True(t, run.GrossPay.Equal(decimal.NewFromInt(600)))
	assert.False(t, run.Superseded)

	require.Len(t, env.payrollRepo.history, 2)
	assert.NotNil(t, env.payrollRepo.history[0].SupersededAt, "el rol anterior queda superseded, no borrado")
}

func TestGeneratePayroll_AnticiposExcesivos(t *testing.T) {
	env := newPayrollEnv(t)
	emp := env.hire(t, "Empleado G", 500)

	resp, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		EmployeeID: emp.ID,
		Period:     "2026-08",
		Advances:   decimal.NewFromInt(600),
	})
	require.NoError(t, err)
	require.Len(t, resp.Failures, 1)
	assert.Contains(t, resp.Failures[0].Error, domain.ErrNegativeNetPay.Error())

	// Nada persistido para el período
	_, err = env.uc.GetPayrollRun(testCompanyID, emp.ID, "2026-08")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeneratePayroll_PeriodoInvalido(t *testing.T) {
	env := newPayrollEnv(t)
	_, err := env.uc.GeneratePayroll(context.Background(), testCompanyID, testUserID, dto.GeneratePayrollRequest{
		Period: "08-2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterEmployee_DatosInvalidos(t *testing.T) {
	env := newPayrollEnv(t)

	_, err := env.uc.RegisterEmployee(testCompanyID, dto.CreateEmployeeRequest{
		Name:           "Sin fecha",
		Identification: "1712345678",
		BaseSalary:     decimal.NewFromInt(500),
		HireDate:       "01/03/2025",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.uc.RegisterEmployee(testCompanyID, dto.CreateEmployeeRequest{
		Name:           "Salario negativo",
		Identification: "1712345678",
		BaseSalary:     decimal.NewFromInt(-1),
		HireDate:       "2025-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
