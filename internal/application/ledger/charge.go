package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// ChargeParams parámetros de emisión de una factura de cobro.
// TriggerType/TriggerEntityID identifican el evento que origina el cobro
// (clave estructurada de deduplicación); vacíos para cobros directos.
type ChargeParams struct {
	TenantID        string
	ActorID         string
	IndividualID    string
	Title           string
	Amount          decimal.Decimal
	DueDays         int // 0 = usar el valor por defecto configurado
	TriggerType     string
	TriggerEntityID string
	DedupByTitle    bool
}

// ChargeUseCase emite facturas de cobro a individuos: cobros directos y
// cobros disparados por eventos de ciclo de vida (ej. activo perdido).
type ChargeUseCase struct {
	txRunner       LedgerTxRunner
	invoiceRepo    repository.FeeInvoiceRepository
	individualRepo repository.IndividualRepository
	dueDays        int
	clock          func() time.Time
}

// NewChargeUseCase construye el caso de uso. dueDays es el plazo de pago por
// defecto en días (BILLING_DUE_DAYS, 14 por defecto).
func NewChargeUseCase(
	txRunner LedgerTxRunner,
	invoiceRepo repository.FeeInvoiceRepository,
	individualRepo repository.IndividualRepository,
	dueDays int,
) *ChargeUseCase {
	return &ChargeUseCase{
		txRunner:       txRunner,
		invoiceRepo:    invoiceRepo,
		individualRepo: individualRepo,
		dueDays:        dueDays,
		clock:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests con timestamps fijos).
func (uc *ChargeUseCase) WithClock(clock func() time.Time) *ChargeUseCase {
	uc.clock = clock
	return uc
}

// Charge emite un cobro directo a un individuo del tenant.
// POST /api/invoices. Valida al individuo fuera de la transacción y emite
// dentro de ella.
func (uc *ChargeUseCase) Charge(ctx context.Context, tenantID, actorID string, in dto.ChargeRequest) (*dto.ChargeResult, error) {
	params := ChargeParams{
		TenantID:     tenantID,
		ActorID:      actorID,
		IndividualID: in.IndividualID,
		Title:        in.Title,
		Amount:       in.Amount,
		DueDays:      in.DueDays,
		DedupByTitle: in.DedupByTitle,
	}
	if err := uc.validate(params); err != nil {
		return nil, err
	}

	var invoice *entity.FeeInvoice
	var reused bool
	err := uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error {
		var err error
		invoice, reused, err = uc.ChargeInTx(invoiceRepo, auditRepo, params, uc.clock())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.ChargeResult{InvoiceID: invoice.ID, Reused: reused}, nil
}

// ChargeInTx emite (o reutiliza) la factura usando los repositorios del
// caller, es decir dentro de SU transacción. Es el punto de entrada para la
// facturación por ciclo de vida: el cambio de estado que dispara el cobro y
// la factura quedan en una sola tx, así un fallo intermedio no deja el evento
// registrado sin cargo ni el cargo sin evento.
//
// Deduplicación: si existe una factura PENDING u OVERDUE del individuo con la
// misma clave (trigger o título exacto), se reutiliza y no se emite otra.
// Una factura ya PAID o VOID no participa: el mismo evento repetido tras el
// pago produce una factura nueva.
func (uc *ChargeUseCase) ChargeInTx(
	invoiceRepo repository.FeeInvoiceRepository,
	auditRepo repository.AuditRepository,
	p ChargeParams,
	now time.Time,
) (*entity.FeeInvoice, bool, error) {
	if err := uc.validate(p); err != nil {
		return nil, false, err
	}

	var existing *entity.FeeInvoice
	var err error
	switch {
	case p.TriggerType != "":
		existing, err = invoiceRepo.FindOpenByTrigger(p.IndividualID, p.TriggerType, p.TriggerEntityID)
	case p.DedupByTitle:
		existing, err = invoiceRepo.FindOpenByTitle(p.IndividualID, p.Title)
	}
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	dueDays := p.DueDays
	if dueDays <= 0 {
		dueDays = uc.dueDays
	}
	invoice := &entity.FeeInvoice{
		ID:              uuid.New().String(),
		TenantID:        p.TenantID,
		IndividualID:    p.IndividualID,
		Title:           p.Title,
		Amount:          p.Amount,
		DueDate:         now.AddDate(0, 0, dueDays),
		Status:          entity.InvoicePending,
		TriggerType:     p.TriggerType,
		TriggerEntityID: p.TriggerEntityID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := invoiceRepo.Create(invoice); err != nil {
		return nil, false, err
	}

	detail := map[string]any{
		"individual_id": p.IndividualID,
		"amount":        p.Amount.String(),
		"due_date":      invoice.DueDate.Format("2006-01-02"),
	}
	if p.TriggerType != "" {
		detail["trigger_type"] = p.TriggerType
		detail["trigger_entity_id"] = p.TriggerEntityID
	}
	if err := auditRepo.Create(&entity.AuditEntry{
		ID:         uuid.New().String(),
		TenantID:   &invoice.TenantID,
		ActorID:    p.ActorID,
		Action:     entity.AuditInvoiceCreated,
		EntityType: entity.EntityFeeInvoice,
		EntityID:   invoice.ID,
		Detail:     detail,
		CreatedAt:  now,
	}); err != nil {
		return nil, false, err
	}
	return invoice, false, nil
}

// IssueLifecycleChargeInTx forma explícita de ChargeInTx para los módulos que
// disparan cobros desde un evento de ciclo de vida (satisface assets.ChargeIssuer).
func (uc *ChargeUseCase) IssueLifecycleChargeInTx(
	invoiceRepo repository.FeeInvoiceRepository,
	auditRepo repository.AuditRepository,
	tenantID, actorID, individualID, title string,
	amount decimal.Decimal,
	triggerType, triggerEntityID string,
	now time.Time,
) (*entity.FeeInvoice, bool, error) {
	return uc.ChargeInTx(invoiceRepo, auditRepo, ChargeParams{
		TenantID:        tenantID,
		ActorID:         actorID,
		IndividualID:    individualID,
		Title:           title,
		Amount:          amount,
		TriggerType:     triggerType,
		TriggerEntityID: triggerEntityID,
	}, now)
}

// validate precondiciones de emisión: individuo facturable del tenant,
// título presente y monto estrictamente positivo. Se rechaza antes de
// cualquier escritura.
func (uc *ChargeUseCase) validate(p ChargeParams) error {
	if p.IndividualID == "" || p.Title == "" {
		return domain.ErrInvalidInput
	}
	if !p.Amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	individual, err := uc.individualRepo.GetByID(p.IndividualID)
	if err != nil {
		return err
	}
	if individual == nil {
		return domain.ErrNotFound
	}
	if individual.TenantID != p.TenantID {
		return domain.ErrForbidden
	}
	if !individual.Active {
		return domain.ErrInvalidInput
	}
	return nil
}

// GetInvoice obtiene una factura del tenant.
func (uc *ChargeUseCase) GetInvoice(ctx context.Context, tenantID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return toInvoiceResponse(invoice), nil
}

// ListInvoices lista facturas del tenant, con filtro opcional por estado.
func (uc *ChargeUseCase) ListInvoices(ctx context.Context, tenantID, status string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.ListByTenant(tenantID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, invoice := range invoices {
		out = append(out, toInvoiceResponse(invoice))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.FeeInvoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:              inv.ID,
		TenantID:        inv.TenantID,
		IndividualID:    inv.IndividualID,
		Title:           inv.Title,
		Amount:          inv.Amount,
		DueDate:         inv.DueDate.Format("2006-01-02"),
		Status:          inv.Status,
		TriggerType:     inv.TriggerType,
		TriggerEntityID: inv.TriggerEntityID,
		CreatedAt:       inv.CreatedAt,
	}
}
