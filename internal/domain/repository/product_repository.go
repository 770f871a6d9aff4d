package repository

import (
	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	List(companyID string, limit, offset int) ([]*entity.Product, error)
	// UpdateUnitCost actualiza el costo promedio ponderado tras una recepción.
	UpdateUnitCost(id string, cost decimal.Decimal) error
}
