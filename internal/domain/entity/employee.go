package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado en nómina.
type Employee struct {
	ID             string
	CompanyID      string
	Name           string
	Identification string // cédula o pasaporte
	Position       string
	BaseSalary     decimal.Decimal
	HireDate       time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayrollRun es el rol de pagos de un empleado para un período: componentes de
// ingreso, descuentos y neto. A lo sumo un rol activo por (empleado, período);
// regenerar con force marca el anterior como superseded, nunca se apilan.
//
// Invariantes: NetPay = GrossPay - TotalDeductions y
// TotalDeductions >= StatutoryContribution siempre que GrossPay > 0.
type PayrollRun struct {
	ID                    string
	EmployeeID            string
	Period                string // "YYYY-MM"
	BaseSalary            decimal.Decimal
	Overtime              decimal.Decimal
	Bonuses               decimal.Decimal
	GrossPay              decimal.Decimal
	StatutoryContribution decimal.Decimal // aporte personal IESS
	Advances              decimal.Decimal // anticipos y préstamos
	TotalDeductions       decimal.Decimal
	NetPay                decimal.Decimal
	CreatedAt             time.Time
	CreatedBy             string
	SupersededAt          *time.Time
}
