package kardex

import (
	"context"
	"fmt"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// movimientos máximos incluidos en el reporte impreso.
const reportMovementLimit = 500

// ReportGenerator genera el reporte kardex (PDF) de un producto.
// La implementación vive en infrastructure/pdf.
type ReportGenerator interface {
	GenerateKardexReport(ctx context.Context, company *entity.Company, product *entity.Product, lots []*entity.Lot, movements []*entity.LotMovement) ([]byte, error)
}

// PDFUseCase genera la representación impresa del kardex por lotes de un producto.
type PDFUseCase struct {
	productRepo  repository.ProductRepository
	lotRepo      repository.LotRepository
	movementRepo repository.LotMovementRepository
	companyRepo  repository.CompanyRepository
	generator    ReportGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movementRepo repository.LotMovementRepository,
	companyRepo repository.CompanyRepository,
	generator ReportGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		productRepo:  productRepo,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		companyRepo:  companyRepo,
		generator:    generator,
	}
}

// DownloadKardexReport recupera producto, lotes y movimientos, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el producto no existe.
//   - domain.ErrForbidden        si el producto no pertenece a la empresa del token.
func (uc *PDFUseCase) DownloadKardexReport(ctx context.Context, companyID, productID string) (pdfBytes []byte, filename string, err error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}

	lots, err := uc.lotRepo.ListByProduct(productID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar lotes: %w", err)
	}

	movements, err := uc.movementRepo.ListByProduct(productID, nil, nil, reportMovementLimit, 0)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar movimientos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateKardexReport(ctx, company, product, lots, movements)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("kardex_%s.pdf", product.SKU)
	return pdfBytes, filename, nil
}
