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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)
var _ repository.PayrollRepository = (*PayrollRepo)(nil)

const employeeColumns = `id, company_id, name, identification, position, base_salary, hire_date, active, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado nuevo.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, employee.Name, employee.Identification,
		employee.Position, employee.BaseSalary, employee.HireDate, employee.Active,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el empleado y bloquea su fila (SELECT FOR UPDATE).
func (r *EmployeeRepo) GetForUpdate(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByCompany lista empleados por empresa, opcionalmente solo activos.
func (r *EmployeeRepo) ListByCompany(companyID string, onlyActive bool, limit, offset int) ([]*entity.Employee, error) {
	query := `
		SELECT ` + employeeColumns + ` FROM employees
		WHERE company_id = $1 AND ($2 = false OR active = true)
		ORDER BY name ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Identification, &e.Position,
			&e.BaseSalary, &e.HireDate, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListActiveIDs devuelve los ids de empleados activos (alcance de una corrida de nómina).
func (r *EmployeeRepo) ListActiveIDs(companyID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM employees WHERE company_id = $1 AND active = true ORDER BY name ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list active employee ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetActive activa o desactiva un empleado.
func (r *EmployeeRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE employees SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set employee active: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) scanOne(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Name, &e.Identification, &e.Position,
		&e.BaseSalary, &e.HireDate, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

const payrollColumns = `id, employee_id, period, base_salary, overtime, bonuses, gross_pay,
	statutory_contribution, advances, total_deductions, net_pay, created_at, created_by, superseded_at`

// PayrollRepo implementación de los roles de pago. El índice parcial único
// sobre (employee_id, period) WHERE superseded_at IS NULL evita roles apilados.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

// Save inserta el rol del período. Con force marca el activo previo como
// superseded antes de insertar; sin force la violación del índice parcial se
// traduce a domain.ErrDuplicatePeriod.
func (r *PayrollRepo) Save(run *entity.PayrollRun, force bool) error {
	ctx := context.Background()
	if force {
		_, err := r.q.Exec(ctx,
			`UPDATE payroll_runs SET superseded_at = now()
			 WHERE employee_id = $1 AND period = $2 AND superseded_at IS NULL`,
			run.EmployeeID, run.Period,
		)
		if err != nil {
			return fmt.Errorf("supersede payroll run: %w", err)
		}
	}
	query := `
		INSERT INTO payroll_runs (id, employee_id, period, base_salary, overtime, bonuses, gross_pay,
			statutory_contribution, advances, total_deductions, net_pay, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		run.ID, run.EmployeeID, run.Period, run.BaseSalary, run.Overtime, run.Bonuses,
		run.GrossPay, run.StatutoryContribution, run.Advances, run.TotalDeductions,
		run.NetPay, run.CreatedAt, run.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePeriod
		}
		return fmt.Errorf("insert payroll run: %w", err)
	}
	return nil
}

// Get obtiene el rol activo de un empleado para un período.
func (r *PayrollRepo) Get(employeeID, period string) (*entity.PayrollRun, error) {
	query := `
		SELECT ` + payrollColumns + ` FROM payroll_runs
		WHERE employee_id = $1 AND period = $2 AND superseded_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, employeeID, period))
}

// GetByID obtiene un rol por id, activo o superseded.
func (r *PayrollRepo) GetByID(id string) (*entity.PayrollRun, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_runs WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByPeriod lista los roles activos de la empresa para un período.
func (r *PayrollRepo) ListByPeriod(companyID, period string) ([]*entity.PayrollRun, error) {
	query := `
		SELECT p.id, p.employee_id, p.period, p.base_salary, p.overtime, p.bonuses, p.gross_pay,
			p.statutory_contribution, p.advances, p.total_deductions, p.net_pay, p.created_at, p.created_by, p.superseded_at
		FROM payroll_runs p
		JOIN employees e ON e.id = p.employee_id
		WHERE e.company_id = $1 AND p.period = $2 AND p.superseded_at IS NULL
		ORDER BY e.name ASC`
	rows, err := r.q.Query(context.Background(), query, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("list payroll runs: %w", err)
	}
	defer rows.Close()
	var list []*entity.PayrollRun
	for rows.Next() {
		var p entity.PayrollRun
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Period, &p.BaseSalary, &p.Overtime,
			&p.Bonuses, &p.GrossPay, &p.StatutoryContribution, &p.Advances,
			&p.TotalDeductions, &p.NetPay, &p.CreatedAt, &p.CreatedBy, &p.SupersededAt); err != nil {
			return nil, fmt.Errorf("scan payroll run: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PayrollRepo) scanOne(row pgx.Row) (*entity.PayrollRun, error) {
	var p entity.PayrollRun
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Period, &p.BaseSalary, &p.Overtime, &p.Bonuses,
		&p.GrossPay, &p.StatutoryContribution, &p.Advances, &p.TotalDeductions,
		&p.NetPay, &p.CreatedAt, &p.CreatedBy, &p.SupersededAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll run: %w", err)
	}
	return &p, nil
}
