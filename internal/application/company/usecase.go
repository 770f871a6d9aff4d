package company

import (
	"time"

	"github.com/google/uuid"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// CompanyUseCase administra las empresas (tenants) del sistema.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra una empresa. El RUC es único en el sistema.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || len(in.RUC) != 13 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.companyRepo.GetByRUC(in.RUC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		RUC:       in.RUC,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// Get devuelve una empresa por id.
func (uc *CompanyUseCase) Get(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

// List lista las empresas registradas.
func (uc *CompanyUseCase) List(page dto.PageRequest) ([]dto.CompanyResponse, error) {
	page.DefaultPage()
	list, err := uc.companyRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		RUC:       c.RUC,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
