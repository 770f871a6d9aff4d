package kardex

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KingHansX/EContable-sub001/internal/application/dto"
	"github.com/KingHansX/EContable-sub001/internal/domain"
	"github.com/KingHansX/EContable-sub001/internal/domain/entity"
	"github.com/KingHansX/EContable-sub001/internal/domain/ledger"
	"github.com/KingHansX/EContable-sub001/internal/domain/repository"
	"github.com/KingHansX/EContable-sub001/pkg/logger"
)

// CloseMonthUseCase corre el corte mensual del kardex: un snapshot por
// (lote, período) con los agregados plegados del ledger hasta el fin del mes.
// Idempotente: repetir el cierre sin force es un no-op contado como omitido.
type CloseMonthUseCase struct {
	txRunner     TxRunner
	lotRepo      repository.LotRepository
	snapshotRepo repository.LotSnapshotRepository
	locks        *ledger.EntityLocks
	log          *logger.Logger
}

// NewCloseMonthUseCase construye el caso de uso de cierre.
func NewCloseMonthUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	snapshotRepo repository.LotSnapshotRepository,
	locks *ledger.EntityLocks,
	log *logger.Logger,
) *CloseMonthUseCase {
	return &CloseMonthUseCase{
		txRunner:     txRunner,
		lotRepo:      lotRepo,
		snapshotRepo: snapshotRepo,
		locks:        locks,
		log:          log.Component("kardex_close"),
	}
}

// CloseMonth cierra el período para los lotes indicados (o todos los de la
// empresa si no se indica ninguno). Lotes ya cerrados quedan como omitidos
// salvo que venga force, en cuyo caso el snapshot previo queda superseded.
func (uc *CloseMonthUseCase) CloseMonth(ctx context.Context, companyID string, in dto.BatchRunRequest) (*dto.BatchRunResponse, error) {
	period, err := ledger.ParsePeriod(in.Period)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	ids := in.EntityIDs
	if len(ids) == 0 {
		ids, err = uc.lotRepo.ListIDs(companyID)
		if err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("period", period.String()).Int("lots", len(ids)).Bool("force", in.Force).Msg("inicia cierre mensual de kardex")
	result := ledger.RunBatch(ctx, period, ids, uc.locks, func(ctx context.Context, lotID string) error {
		return uc.closeLot(ctx, companyID, lotID, period, in.Force)
	})
	uc.log.Info().Str("period", period.String()).Int("processed", result.Processed).Int("skipped", result.Skipped).Int("failures", len(result.Failures)).Msg("cierre mensual de kardex terminado")

	return toBatchResponse(result), nil
}

// closeLot pliega el ledger del lote hasta el fin del período y persiste el
// snapshot en su propia transacción.
func (uc *CloseMonthUseCase) closeLot(ctx context.Context, companyID, lotID string, period ledger.Period, force bool) error {
	return uc.txRunner.RunClose(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.LotMovementRepository,
		snapRepo repository.LotSnapshotRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.CompanyID != companyID {
			return domain.ErrForbidden
		}

		end := period.End()
		movs, err := movRepo.ListByLot(lotID, &end)
		if err != nil {
			return err
		}
		entries := make([]ledger.Entry, 0, len(movs))
		for _, m := range movs {
			entries = append(entries, ledger.Entry{
				ID:       m.ID,
				EntityID: m.LotID,
				Kind:     m.Type,
				Quantity: m.Quantity,
				Date:     m.Date,
			})
		}
		received := ledger.SumUntil(entries, end, entity.LotMovementReceive)
		consumed := ledger.SumUntil(entries, end, entity.LotMovementConsume, entity.LotMovementWriteOff).Neg()

		snap := &entity.LotSnapshot{
			ID:           uuid.New().String(),
			LotID:        lotID,
			Period:       period.String(),
			ReceivedQty:  received,
			ConsumedQty:  consumed,
			RemainingQty: received.Sub(consumed),
			CreatedAt:    time.Now(),
		}
		return snapRepo.Save(snap, force)
	})
}

// GetSnapshot devuelve el corte activo de un lote para un período.
func (uc *CloseMonthUseCase) GetSnapshot(companyID, lotID, period string) (*dto.LotSnapshotResponse, error) {
	if _, err := ledger.ParsePeriod(period); err != nil {
		return nil, domain.ErrInvalidInput
	}
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if lot.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	snap, err := uc.snapshotRepo.Get(lotID, period)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	resp := toSnapshotResponse(snap)
	return &resp, nil
}

// ListSnapshots lista los cortes activos de la empresa para un período.
func (uc *CloseMonthUseCase) ListSnapshots(companyID, period string) ([]dto.LotSnapshotResponse, error) {
	if _, err := ledger.ParsePeriod(period); err != nil {
		return nil, domain.ErrInvalidInput
	}
	snaps, err := uc.snapshotRepo.ListByPeriod(period, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotSnapshotResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, toSnapshotResponse(s))
	}
	return out, nil
}

func toSnapshotResponse(s *entity.LotSnapshot) dto.LotSnapshotResponse {
	return dto.LotSnapshotResponse{
		LotID:        s.LotID,
		Period:       s.Period,
		ReceivedQty:  s.ReceivedQty,
		ConsumedQty:  s.ConsumedQty,
		RemainingQty: s.RemainingQty,
		CreatedAt:    s.CreatedAt,
		Superseded:   s.SupersededAt != nil,
	}
}

func toBatchResponse(r ledger.BatchResult) *dto.BatchRunResponse {
	resp := &dto.BatchRunResponse{
		Period:    r.Period.String(),
		Processed: r.Processed,
		Skipped:   r.Skipped,
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, dto.BatchFailureItem{EntityID: f.EntityID, Error: f.Err.Error()})
	}
	return resp
}
