package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest body para POST /api/employees.
type CreateEmployeeRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Identification string          `json:"identification" validate:"required,min=8,max=20"`
	Position       string          `json:"position,omitempty"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	HireDate       string          `json:"hire_date" validate:"required"` // "YYYY-MM-DD"
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Identification string          `json:"identification"`
	Position       string          `json:"position,omitempty"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	HireDate       string          `json:"hire_date"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// GeneratePayrollRequest body para POST /api/payroll/runs. Con EmployeeID
// vacío se genera el rol de todos los empleados activos de la empresa.
type GeneratePayrollRequest struct {
	EmployeeID string          `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Period     string          `json:"period" validate:"required"` // "YYYY-MM"
	Overtime   decimal.Decimal `json:"overtime"`
	Bonuses    decimal.Decimal `json:"bonuses"`
	Advances   decimal.Decimal `json:"advances"`
	Force      bool            `json:"force,omitempty"` // regenerar: supersede el rol previo
}

// PayrollRunResponse rol de pagos de un empleado para un período.
type PayrollRunResponse struct {
	ID                    string          `json:"id"`
	EmployeeID            string          `json:"employee_id"`
	EmployeeName          string          `json:"employee_name,omitempty"`
	Period                string          `json:"period"`
	BaseSalary            decimal.Decimal `json:"base_salary"`
	Overtime              decimal.Decimal `json:"overtime"`
	Bonuses               decimal.Decimal `json:"bonuses"`
	GrossPay              decimal.Decimal `json:"gross_pay"`
	StatutoryContribution decimal.Decimal `json:"statutory_contribution"`
	Advances              decimal.Decimal `json:"advances"`
	TotalDeductions       decimal.Decimal `json:"total_deductions"`
	NetPay                decimal.Decimal `json:"net_pay"`
	CreatedAt             time.Time       `json:"created_at"`
	Superseded            bool            `json:"superseded"`
}
