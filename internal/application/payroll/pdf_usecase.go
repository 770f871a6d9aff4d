package payroll

import (
	"context"
	"fmt"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// SlipGenerator genera el rol de pagos individual (PDF) de un empleado.
// La implementación vive en infrastructure/pdf.
type SlipGenerator interface {
	GenerateSlip(ctx context.Context, company *entity.Company, employee *entity.Employee, run *entity.PayrollRun) ([]byte, error)
}

// PDFUseCase genera la representación impresa de un rol de pagos.
// Solo los roles vigentes son descargables: un rol reemplazado por una
// regeneración ya no representa la nómina del período.
type PDFUseCase struct {
	payrollRepo  repository.PayrollRepository
	employeeRepo repository.EmployeeRepository
	companyRepo  repository.CompanyRepository
	generator    SlipGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	payrollRepo repository.PayrollRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	generator SlipGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		generator:    generator,
	}
}

// DownloadSlip recupera el rol, verifica pertenencia y vigencia, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el rol no existe.
//   - domain.ErrForbidden        si el empleado no pertenece a la empresa del token.
//   - domain.ErrInvalidInput     si el rol fue reemplazado por una regeneración.
func (uc *PDFUseCase) DownloadSlip(ctx context.Context, companyID, runID string) (pdfBytes []byte, filename string, err error) {
	run, err := uc.payrollRepo.GetByID(runID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener rol: %w", err)
	}
	if run == nil {
		return nil, "", domain.ErrNotFound
	}

	employee, err := uc.employeeRepo.GetByID(run.EmployeeID)
	if err != nil || employee == nil {
		return nil, "", fmt.Errorf("pdf: obtener empleado: %w", err)
	}
	if employee.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	if run.SupersededAt != nil {
		return nil, "", fmt.Errorf("%w: el rol fue reemplazado por una regeneración, descargue el rol vigente del período %s",
			domain.ErrInvalidInput, run.Period)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateSlip(ctx, company, employee, run)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("rol_%s_%s.pdf", employee.Identification, run.Period)
	return pdfBytes, filename, nil
}
