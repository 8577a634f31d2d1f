package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
	"github.com/jhoicas/eduledger-api/pkg/logger"
)

// defaultScanBatch tamaño de lote del escáner. Cada factura transiciona en
// su propia transacción: nunca se sostiene una tx larga sobre toda la base,
// para no contender con pagos concurrentes.
const defaultScanBatch = 200

// OverdueScanUseCase reclasifica facturas PENDING cuyo vencimiento ya pasó y
// encola una alerta por cada una. La consulta se limita a PENDING, así que
// reejecutar el escáner es un no-op para facturas ya OVERDUE o PAID.
type OverdueScanUseCase struct {
	txRunner    LedgerTxRunner
	invoiceRepo repository.FeeInvoiceRepository
	alerts      AlertDispatcher
	log         *logger.Logger
	clock       func() time.Time
	batchSize   int
}

// NewOverdueScanUseCase construye el escáner.
func NewOverdueScanUseCase(
	txRunner LedgerTxRunner,
	invoiceRepo repository.FeeInvoiceRepository,
	alerts AlertDispatcher,
	log *logger.Logger,
) *OverdueScanUseCase {
	return &OverdueScanUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		alerts:      alerts,
		log:         log,
		clock:       time.Now,
		batchSize:   defaultScanBatch,
	}
}

// WithClock reemplaza el reloj (tests con timestamps fijos).
func (uc *OverdueScanUseCase) WithClock(clock func() time.Time) *OverdueScanUseCase {
	uc.clock = clock
	return uc
}

// Scan ejecuta una corrida del escáner con "ahora" tomado del reloj inyectado.
// Devuelve cuántas facturas se examinaron, cuántas transicionaron a OVERDUE y
// cuántas alertas se encolaron.
func (uc *OverdueScanUseCase) Scan(ctx context.Context, actorID string) (*dto.OverdueScanResult, error) {
	now := uc.clock()
	result := &dto.OverdueScanResult{}

	for {
		batch, err := uc.invoiceRepo.ListDueBefore(now, uc.batchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		transitionedInBatch := 0
		for _, invoice := range batch {
			result.Scanned++
			ok, err := uc.transition(ctx, actorID, invoice, now)
			if err != nil {
				uc.log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("transición a OVERDUE falló")
				continue
			}
			if !ok {
				// Alguien pagó o anuló la factura entre la consulta y la
				// transición: no es un error, simplemente ya no califica.
				continue
			}
			transitionedInBatch++
			result.Transitioned++

			if err := uc.alerts.DispatchOverdueAlert(ctx, invoice.ID, invoice.IndividualID); err != nil {
				uc.log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("alerta de vencimiento no encolada")
				continue
			}
			result.AlertsQueued++
		}

		// Si el lote completo quedó sin transicionar (todas en carrera o con
		// error), cortar aquí evita reconsultar las mismas filas en bucle.
		if transitionedInBatch == 0 || len(batch) < uc.batchSize {
			break
		}
	}

	uc.log.Info().
		Int("scanned", result.Scanned).
		Int("transitioned", result.Transitioned).
		Int("alerts_queued", result.AlertsQueued).
		Msg("escaneo de facturas vencidas terminado")
	return result, nil
}

// transition pasa una factura PENDING → OVERDUE en su propia transacción,
// con la entrada de bitácora incluida.
func (uc *OverdueScanUseCase) transition(ctx context.Context, actorID string, invoice *entity.FeeInvoice, now time.Time) (bool, error) {
	var transitioned bool
	err := uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error {
		ok, err := invoiceRepo.UpdateStatusIf(invoice.ID, []string{entity.InvoicePending}, entity.InvoiceOverdue, now)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		transitioned = true
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			TenantID:   &invoice.TenantID,
			ActorID:    actorID,
			Action:     entity.AuditInvoiceOverdue,
			EntityType: entity.EntityFeeInvoice,
			EntityID:   invoice.ID,
			Detail: map[string]any{
				"individual_id": invoice.IndividualID,
				"due_date":      invoice.DueDate.Format("2006-01-02"),
				"amount":        invoice.Amount.String(),
			},
			CreatedAt: now,
		})
	})
	return transitioned, err
}
