package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
)

var _ repository.LotMovementRepository = (*LotMovementRepo)(nil)
var _ repository.LotSnapshotRepository = (*LotSnapshotRepo)(nil)

// LotMovementRepo implementación del ledger append-only del kardex sobre
// PostgreSQL. Solo INSERT y SELECT: sin UPDATE ni DELETE.
type LotMovementRepo struct {
	q Querier
}

// NewLotMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotMovementRepository(q Querier) *LotMovementRepo {
	return &LotMovementRepo{q: q}
}

// Create inserta un movimiento en el ledger del lote.
func (r *LotMovementRepo) Create(movement *entity.LotMovement) error {
	query := `
		INSERT INTO lot_movements (id, transaction_id, lot_id, product_id, type, quantity, reference, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.LotID, movement.ProductID,
		movement.Type, movement.Quantity, movement.Reference, movement.Date,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert lot movement: %w", err)
	}
	return nil
}

// ListByLot lista el ledger de un lote en orden cronológico, opcionalmente
// hasta una fecha de corte.
func (r *LotMovementRepo) ListByLot(lotID string, until *time.Time) ([]*entity.LotMovement, error) {
	query := `
		SELECT id, transaction_id, lot_id, product_id, type, quantity, reference, date, created_at, created_by
		FROM lot_movements
		WHERE lot_id = $1 AND ($2::timestamptz IS NULL OR date <= $2)
		ORDER BY date ASC, created_at ASC`
	return r.scanMany(query, lotID, until)
}

// ListByProduct lista los movimientos de un producto en un rango de fechas.
func (r *LotMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.LotMovement, error) {
	query := `
		SELECT id, transaction_id, lot_id, product_id, type, quantity, reference, date, created_at, created_by
		FROM lot_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC
		LIMIT $4 OFFSET $5`
	return r.scanMany(query, productID, from, to, limit, offset)
}

func (r *LotMovementRepo) scanMany(query string, args ...any) ([]*entity.LotMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lot movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotMovement
	for rows.Next() {
		var m entity.LotMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.LotID, &m.ProductID, &m.Type,
			&m.Quantity, &m.Reference, &m.Date, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan lot movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// LotSnapshotRepo implementación de los cortes mensuales del kardex.
// El índice parcial único sobre (lot_id, period) WHERE superseded_at IS NULL
// garantiza a lo sumo un snapshot activo por período.
type LotSnapshotRepo struct {
	q Querier
}

// NewLotSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotSnapshotRepository(q Querier) *LotSnapshotRepo {
	return &LotSnapshotRepo{q: q}
}

// Save inserta el snapshot del período. Con force marca el activo previo como
// superseded antes de insertar (misma tx); sin force la violación del índice
// parcial se traduce a domain.ErrDuplicatePeriod.
func (r *LotSnapshotRepo) Save(snapshot *entity.LotSnapshot, force bool) error {
	ctx := context.Background()
	if force {
		_, err := r.q.Exec(ctx,
			`UPDATE lot_snapshots SET superseded_at = now()
			 WHERE lot_id = $1 AND period = $2 AND superseded_at IS NULL`,
			snapshot.LotID, snapshot.Period,
		)
		if err != nil {
			return fmt.Errorf("supersede lot snapshot: %w", err)
		}
	}
	query := `
		INSERT INTO lot_snapshots (id, lot_id, period, received_qty, consumed_qty, remaining_qty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		snapshot.ID, snapshot.LotID, snapshot.Period, snapshot.ReceivedQty,
		snapshot.ConsumedQty, snapshot.RemainingQty, snapshot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePeriod
		}
		return fmt.Errorf("insert lot snapshot: %w", err)
	}
	return nil
}

// Get obtiene el snapshot activo de un lote para un período.
func (r *LotSnapshotRepo) Get(lotID, period string) (*entity.LotSnapshot, error) {
	query := `
		SELECT id, lot_id, period, received_qty, consumed_qty, remaining_qty, created_at, superseded_at
		FROM lot_snapshots
		WHERE lot_id = $1 AND period = $2 AND superseded_at IS NULL`
	var s entity.LotSnapshot
	err := r.q.QueryRow(context.Background(), query, lotID, period).Scan(
		&s.ID, &s.LotID, &s.Period, &s.ReceivedQty, &s.ConsumedQty,
		&s.RemainingQty, &s.CreatedAt, &s.SupersededAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot snapshot: %w", err)
	}
	return &s, nil
}

// ListByPeriod lista los snapshots activos de la empresa para un período.
func (r *LotSnapshotRepo) ListByPeriod(period string, companyID string) ([]*entity.LotSnapshot, error) {
	query := `
		SELECT s.id, s.lot_id, s.period, s.received_qty, s.consumed_qty, s.remaining_qty, s.created_at, s.superseded_at
		FROM lot_snapshots s
		JOIN lots l ON l.id = s.lot_id
		WHERE s.period = $1 AND l.company_id = $2 AND s.superseded_at IS NULL
		ORDER BY s.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, period, companyID)
	if err != nil {
		return nil, fmt.Errorf("list lot snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotSnapshot
	for rows.Next() {
		var s entity.LotSnapshot
		if err := rows.Scan(&s.ID, &s.LotID, &s.Period, &s.ReceivedQty, &s.ConsumedQty,
			&s.RemainingQty, &s.CreatedAt, &s.SupersededAt); err != nil {
			return nil, fmt.Errorf("scan lot snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
