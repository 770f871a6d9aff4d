package kardex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/kardex"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

// KardexUseCase opera el kardex por lotes: recepciones, consumos FEFO y bajas,
// de forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y serialización
// por producto en proceso.
type KardexUseCase struct {
	txRunner         TxRunner
	productRepo      repository.ProductRepository
	lotRepo          repository.LotRepository
	movementRepo     repository.LotMovementRepository
	locks            *ledger.EntityLocks
	expiryWindowDays int
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	movementRepo repository.LotMovementRepository,
	locks *ledger.EntityLocks,
	expiryWindowDays int,
) *KardexUseCase {
	return &KardexUseCase{
		txRunner:         txRunner,
		productRepo:      productRepo,
		lotRepo:          lotRepo,
		movementRepo:     movementRepo,
		locks:            locks,
		expiryWindowDays: expiryWindowDays,
	}
}

// CreateProduct registra un producto. El SKU es único por empresa.
func (uc *KardexUseCase) CreateProduct(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByCompanyAndSKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		UnitCost:    decimal.Zero,
		UnitMeasure: in.UnitMeasure,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetProduct devuelve un producto por id.
func (uc *KardexUseCase) GetProduct(companyID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// ListProducts lista los productos de la empresa.
func (uc *KardexUseCase) ListProducts(companyID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ReceiveLot registra una recepción en un lote nuevo o existente (mismo
// product_id + lot_number). Si trae costo unitario recalcula el costo promedio
// ponderado del producto, todo en la misma transacción.
func (uc *KardexUseCase) ReceiveLot(ctx context.Context, companyID, userID string, in dto.ReceiveLotRequest) (*dto.LotResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	expiration, err := time.Parse("2006-01-02", in.ExpirationDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	txID := uuid.New().String()
	var received *entity.Lot
	err = uc.locks.WithEntity(in.ProductID, func() error {
		return uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			movRepo repository.LotMovementRepository,
			productRepo repository.ProductRepository,
		) error {
			lot, err := lotRepo.GetByProductAndNumber(in.ProductID, in.LotNumber)
			if err != nil {
				return err
			}
			if lot == nil {
				lot = &entity.Lot{
					ID:             uuid.New().String(),
					CompanyID:      companyID,
					ProductID:      in.ProductID,
					LotNumber:      in.LotNumber,
					ExpirationDate: expiration,
					ReceivedQty:    decimal.Zero,
					ConsumedQty:    decimal.Zero,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := lotRepo.Create(lot); err != nil {
					return err
				}
			} else {
				// Bloquea la fila del lote antes de tocar cantidades
				lot, err = lotRepo.GetForUpdate(lot.ID)
				if err != nil {
					return err
				}
				// Un número de lote tiene una sola fecha de vencimiento
				if !lot.ExpirationDate.Equal(expiration) {
					return domain.ErrConflict
				}
			}

			if in.UnitCost != nil {
				siblings, err := lotRepo.ListByProduct(in.ProductID)
				if err != nil {
					return err
				}
				currentQty := decimal.Zero
				for _, l := range siblings {
					currentQty = currentQty.Add(l.Remaining())
				}
				newCost := kardex.WeightedAverageCost(currentQty, product.UnitCost, in.Quantity, *in.UnitCost)
				if err := productRepo.UpdateUnitCost(in.ProductID, newCost); err != nil {
					return err
				}
			}

			mov := &entity.LotMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				LotID:         lot.ID,
				ProductID:     in.ProductID,
				Type:          entity.LotMovementReceive,
				Quantity:      in.Quantity,
				Reference:     in.Reference,
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			lot.ReceivedQty = lot.ReceivedQty.Add(in.Quantity)
			lot.UpdatedAt = now
			if err := lotRepo.UpdateQuantities(lot); err != nil {
				return err
			}
			received = lot
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toLotResponse(received, now, uc.expiryWindowDays)
	return &resp, nil
}

// ConsumeStock consume una cantidad de un producto aplicando FEFO sobre sus
// lotes: vencimiento más próximo primero, empates por antigüedad. Todo o nada:
// si el remanente total no alcanza, falla sin consumo parcial.
func (uc *KardexUseCase) ConsumeStock(ctx context.Context, companyID, userID string, in dto.ConsumeStockRequest) (*dto.ConsumeResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	txID := uuid.New().String()
	resp := &dto.ConsumeResponse{
		TransactionID: txID,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
	}
	err = uc.locks.WithEntity(in.ProductID, func() error {
		return uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			movRepo repository.LotMovementRepository,
			_ repository.ProductRepository,
		) error {
			// Bloquea todas las filas de lotes del producto (SELECT FOR UPDATE)
			lots, err := lotRepo.ListByProductForUpdate(in.ProductID)
			if err != nil {
				return err
			}
			plan, err := kardex.PlanConsumption(lots, in.Quantity)
			if err != nil {
				return err
			}
			byID := make(map[string]*entity.Lot, len(lots))
			for _, l := range lots {
				byID[l.ID] = l
			}
			for _, line := range plan {
				lot := byID[line.LotID]
				mov := &entity.LotMovement{
					ID:            uuid.New().String(),
					TransactionID: txID,
					LotID:         lot.ID,
					ProductID:     in.ProductID,
					Type:          entity.LotMovementConsume,
					Quantity:      line.Quantity.Neg(),
					Reference:     in.Reference,
					Date:          now,
					CreatedAt:     now,
					CreatedBy:     userID,
				}
				if err := movRepo.Create(mov); err != nil {
					return err
				}
				lot.ConsumedQty = lot.ConsumedQty.Add(line.Quantity)
				lot.UpdatedAt = now
				if err := lotRepo.UpdateQuantities(lot); err != nil {
					return err
				}
				resp.Lines = append(resp.Lines, dto.ConsumptionLineItem{
					LotID:     lot.ID,
					LotNumber: lot.LotNumber,
					Quantity:  line.Quantity,
				})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// WriteOff da de baja el remanente completo de un lote (vencidos, daños).
// Queda como un movimiento WRITE_OFF en el ledger, nunca como borrado.
func (uc *KardexUseCase) WriteOff(ctx context.Context, companyID, userID string, in dto.WriteOffRequest) (*dto.LotResponse, error) {
	lot, err := uc.lotRepo.GetByID(in.LotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if lot.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var result *entity.Lot
	err = uc.locks.WithEntity(lot.ProductID, func() error {
		return uc.txRunner.Run(ctx, func(
			lotRepo repository.LotRepository,
			movRepo repository.LotMovementRepository,
			_ repository.ProductRepository,
		) error {
			locked, err := lotRepo.GetForUpdate(in.LotID)
			if err != nil {
				return err
			}
			remaining := locked.Remaining()
			if !remaining.GreaterThan(decimal.Zero) {
				return domain.ErrInvalidInput
			}
			mov := &entity.LotMovement{
				ID:            uuid.New().String(),
				TransactionID: uuid.New().String(),
				LotID:         locked.ID,
				ProductID:     locked.ProductID,
				Type:          entity.LotMovementWriteOff,
				Quantity:      remaining.Neg(),
				Reference:     in.Reference,
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			locked.ConsumedQty = locked.ReceivedQty
			locked.UpdatedAt = now
			if err := lotRepo.UpdateQuantities(locked); err != nil {
				return err
			}
			result = locked
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	resp := toLotResponse(result, now, uc.expiryWindowDays)
	return &resp, nil
}

// GetProductKardex devuelve el kardex de un producto: lotes con estado de
// vencimiento derivado a la fecha asOf (nil = ahora).
func (uc *KardexUseCase) GetProductKardex(companyID, productID string, asOf *time.Time) (*dto.ProductKardexResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lots, err := uc.lotRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if asOf != nil {
		now = *asOf
	}
	resp := &dto.ProductKardexResponse{
		Product:        toProductResponse(product),
		TotalRemaining: decimal.Zero,
	}
	for _, lot := range lots {
		resp.Lots = append(resp.Lots, toLotResponse(lot, now, uc.expiryWindowDays))
		resp.TotalRemaining = resp.TotalRemaining.Add(lot.Remaining())
	}
	return resp, nil
}

// ListLots lista los lotes de la empresa con estado derivado.
func (uc *KardexUseCase) ListLots(companyID string, page dto.PageRequest) ([]dto.LotResponse, error) {
	page.DefaultPage()
	lots, err := uc.lotRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotResponse(lot, now, uc.expiryWindowDays))
	}
	return out, nil
}

// ListMovements lista el ledger de movimientos de un producto.
func (uc *KardexUseCase) ListMovements(companyID, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.LotMovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	movs, err := uc.movementRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.LotMovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			LotID:         m.LotID,
			ProductID:     m.ProductID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Reference:     m.Reference,
			Date:          m.Date,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		UnitCost:    p.UnitCost,
		UnitMeasure: p.UnitMeasure,
		CreatedAt:   p.CreatedAt,
	}
}

func toLotResponse(lot *entity.Lot, now time.Time, windowDays int) dto.LotResponse {
	return dto.LotResponse{
		ID:             lot.ID,
		ProductID:      lot.ProductID,
		LotNumber:      lot.LotNumber,
		ExpirationDate: lot.ExpirationDate.Format("2006-01-02"),
		ReceivedQty:    lot.ReceivedQty,
		ConsumedQty:    lot.ConsumedQty,
		Remaining:      lot.Remaining(),
		Status:         kardex.Status(lot.ExpirationDate, now, windowDays),
		DaysToExpiry:   kardex.DaysToExpiry(lot.ExpirationDate, now),
		CreatedAt:      lot.CreatedAt,
	}
}
