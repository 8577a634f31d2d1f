package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// SettlePaymentUseCase registra pagos como transiciones de estado: no hay
// movimiento real de dinero, solo la confirmación frente a un proveedor de
// pagos que este sistema no implementa. Pagar un instrumento ya pagado se
// rechaza (no se acepta en silencio) para hacer visibles los doble-submit
// del cliente.
type SettlePaymentUseCase struct {
	txRunner       LedgerTxRunner
	invoiceRepo    repository.FeeInvoiceRepository
	settlementRepo repository.SettlementRepository
	clock          func() time.Time
}

// NewSettlePaymentUseCase construye el caso de uso.
func NewSettlePaymentUseCase(
	txRunner LedgerTxRunner,
	invoiceRepo repository.FeeInvoiceRepository,
	settlementRepo repository.SettlementRepository,
) *SettlePaymentUseCase {
	return &SettlePaymentUseCase{
		txRunner:       txRunner,
		invoiceRepo:    invoiceRepo,
		settlementRepo: settlementRepo,
		clock:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests con timestamps fijos).
func (uc *SettlePaymentUseCase) WithClock(clock func() time.Time) *SettlePaymentUseCase {
	uc.clock = clock
	return uc
}

// PayInvoice transiciona una factura PENDING/OVERDUE → PAID.
// Devuelve ErrAlreadyPaid si ya estaba pagada (incluso si otra petición ganó
// la carrera) y ErrConflict si está anulada.
func (uc *SettlePaymentUseCase) PayInvoice(ctx context.Context, tenantID, actorID, invoiceID string) (*dto.SettleResult, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if tenantID != "" && invoice.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	switch invoice.Status {
	case entity.InvoicePaid:
		return nil, domain.ErrAlreadyPaid
	case entity.InvoiceVoid:
		return nil, domain.ErrConflict
	}

	now := uc.clock()
	err = uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error {
		ok, err := invoiceRepo.UpdateStatusIf(invoice.ID,
			[]string{entity.InvoicePending, entity.InvoiceOverdue}, entity.InvoicePaid, now)
		if err != nil {
			return err
		}
		if !ok {
			// Perdió la carrera contra otro pago o una anulación.
			return domain.ErrAlreadyPaid
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			TenantID:   &invoice.TenantID,
			ActorID:    actorID,
			Action:     entity.AuditInvoicePaid,
			EntityType: entity.EntityFeeInvoice,
			EntityID:   invoice.ID,
			Detail: map[string]any{
				"individual_id": invoice.IndividualID,
				"amount":        invoice.Amount.String(),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.SettleResult{ID: invoice.ID, Status: entity.InvoicePaid}, nil
}

// VoidInvoice anula una factura PENDING/OVERDUE. Una factura pagada no se
// anula (ErrAlreadyPaid) y anularla dos veces es un conflicto.
func (uc *SettlePaymentUseCase) VoidInvoice(ctx context.Context, tenantID, actorID, invoiceID string) (*dto.SettleResult, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	switch invoice.Status {
	case entity.InvoicePaid:
		return nil, domain.ErrAlreadyPaid
	case entity.InvoiceVoid:
		return nil, domain.ErrConflict
	}

	now := uc.clock()
	err = uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error {
		ok, err := invoiceRepo.UpdateStatusIf(invoice.ID,
			[]string{entity.InvoicePending, entity.InvoiceOverdue}, entity.InvoiceVoid, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			TenantID:   &invoice.TenantID,
			ActorID:    actorID,
			Action:     entity.AuditInvoiceVoided,
			EntityType: entity.EntityFeeInvoice,
			EntityID:   invoice.ID,
			Detail:     map[string]any{"individual_id": invoice.IndividualID},
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.SettleResult{ID: invoice.ID, Status: entity.InvoiceVoid}, nil
}

// SettleSettlement transiciona un cargo de período OUTSTANDING → SETTLED.
// Operación del operador de plataforma; ErrAlreadySettled si ya estaba saldado.
func (uc *SettlePaymentUseCase) SettleSettlement(ctx context.Context, actorID, settlementID string) (*dto.SettleResult, error) {
	settlement, err := uc.settlementRepo.GetByID(settlementID)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, domain.ErrNotFound
	}
	if settlement.Status == entity.SettlementSettled {
		return nil, domain.ErrAlreadySettled
	}

	now := uc.clock()
	err = uc.txRunner.RunSettlement(ctx, func(
		settlementRepo repository.SettlementRepository,
		auditRepo repository.AuditRepository,
	) error {
		ok, err := settlementRepo.MarkSettled(settlement.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadySettled
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			TenantID:   &settlement.TenantID,
			ActorID:    actorID,
			Action:     entity.AuditSettlementSettled,
			EntityType: entity.EntitySettlement,
			EntityID:   settlement.ID,
			Detail: map[string]any{
				"period_start": settlement.PeriodStart.Format("2006-01-02"),
				"period_end":   settlement.PeriodEnd.Format("2006-01-02"),
				"total":        settlement.TotalAmount.String(),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.SettleResult{ID: settlement.ID, Status: entity.SettlementSettled}, nil
}

// ListSettlements lista los cargos de período de un tenant.
func (uc *SettlePaymentUseCase) ListSettlements(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.SettlementResponse, error) {
	page.DefaultPage()
	settlements, err := uc.settlementRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SettlementResponse, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, &dto.SettlementResponse{
			ID:          s.ID,
			TenantID:    s.TenantID,
			PeriodStart: s.PeriodStart.Format("2006-01-02"),
			PeriodEnd:   s.PeriodEnd.Format("2006-01-02"),
			BaseAmount:  s.BaseAmount,
			ExtraUnits:  s.ExtraUnits,
			ExtraAmount: s.ExtraAmount,
			TotalAmount: s.TotalAmount,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out, nil
}
