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

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, company_id, product_id, lot_number, expiration_date, received_qty, consumed_qty, created_at, updated_at`

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote nuevo. (producto, número de lote) tiene constraint único.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.CompanyID, lot.ProductID, lot.LotNumber, lot.ExpirationDate,
		lot.ReceivedQty, lot.ConsumedQty, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByProductAndNumber obtiene un lote por producto y número de lote.
func (r *LotRepo) GetByProductAndNumber(productID, lotNumber string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE product_id = $1 AND lot_number = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, lotNumber))
}

// ListByProduct lista los lotes de un producto, vencimiento más próximo primero.
func (r *LotRepo) ListByProduct(productID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM lots
		WHERE product_id = $1
		ORDER BY expiration_date ASC, created_at ASC`
	return r.scanMany(query, productID)
}

// ListByCompany lista lotes por empresa con paginación.
func (r *LotRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM lots
		WHERE company_id = $1
		ORDER BY expiration_date ASC, created_at ASC
		LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

// ListIDs devuelve los IDs de todos los lotes de la empresa (alcance de un cierre).
func (r *LotRepo) ListIDs(companyID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM lots WHERE company_id = $1 ORDER BY created_at ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list lot ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan lot id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByProductForUpdate bloquea las filas de los lotes del producto
// (SELECT FOR UPDATE) para aplicar el consumo FEFO multi-lote sin carreras.
// El orden de bloqueo es el mismo orden FEFO, determinista contra deadlocks.
func (r *LotRepo) ListByProductForUpdate(productID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM lots
		WHERE product_id = $1
		ORDER BY expiration_date ASC, created_at ASC
		FOR UPDATE`
	return r.scanMany(query, productID)
}

// GetForUpdate obtiene el lote y bloquea su fila (SELECT FOR UPDATE).
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// UpdateQuantities materializa received/consumed tras un movimiento (misma tx).
func (r *LotRepo) UpdateQuantities(lot *entity.Lot) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lots SET received_qty = $2, consumed_qty = $3, updated_at = $4 WHERE id = $1`,
		lot.ID, lot.ReceivedQty, lot.ConsumedQty, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot quantities: %w", err)
	}
	return nil
}

func (r *LotRepo) scanOne(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.ProductID, &l.LotNumber, &l.ExpirationDate,
		&l.ReceivedQty, &l.ConsumedQty, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) scanMany(query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ProductID, &l.LotNumber, &l.ExpirationDate,
			&l.ReceivedQty, &l.ConsumedQty, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
