package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/billing"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
	"github.com/jhoicas/eduledger-api/pkg/logger"
)

// PeriodBillingUseCase calcula y emite los cargos de suscripción de la
// plataforma: un Settlement por tenant activo por período. Reinvocarlo para
// el mismo período es seguro: los tenants ya facturados se reportan como
// skipped y el constraint único de la tabla arbitra corridas concurrentes.
type PeriodBillingUseCase struct {
	txRunner       LedgerTxRunner
	tenantRepo     repository.TenantRepository
	individualRepo repository.IndividualRepository
	overageRate    decimal.Decimal
	log            *logger.Logger
	clock          func() time.Time
}

// NewPeriodBillingUseCase construye el caso de uso. overageRate es la tarifa
// por individuo que excede el límite del plan (ver pkg/config, BILLING_OVERAGE_RATE).
func NewPeriodBillingUseCase(
	txRunner LedgerTxRunner,
	tenantRepo repository.TenantRepository,
	individualRepo repository.IndividualRepository,
	overageRate decimal.Decimal,
	log *logger.Logger,
) *PeriodBillingUseCase {
	return &PeriodBillingUseCase{
		txRunner:       txRunner,
		tenantRepo:     tenantRepo,
		individualRepo: individualRepo,
		overageRate:    overageRate,
		log:            log,
		clock:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests con timestamps fijos).
func (uc *PeriodBillingUseCase) WithClock(clock func() time.Time) *PeriodBillingUseCase {
	uc.clock = clock
	return uc
}

// Run ejecuta la facturación del período para todos los tenants activos.
// El fallo de un tenant no aborta la corrida: cada tenant se procesa de forma
// independiente y el resultado agrega un outcome por tenant.
func (uc *PeriodBillingUseCase) Run(ctx context.Context, actorID string, in dto.RunPeriodBillingRequest) (*dto.PeriodBillingResult, error) {
	periodStart, periodEnd, err := parsePeriod(in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return nil, err
	}

	tenants, err := uc.tenantRepo.ListActive()
	if err != nil {
		return nil, err
	}

	result := &dto.PeriodBillingResult{
		TotalAmount: decimal.Zero,
		Outcomes:    make([]dto.TenantBillingOutcome, 0, len(tenants)),
	}
	for _, tenant := range tenants {
		outcome := uc.billTenant(ctx, actorID, tenant, periodStart, periodEnd)
		switch outcome.Status {
		case "billed":
			result.Billed++
			result.TotalAmount = result.TotalAmount.Add(outcome.Amount)
		case "skipped":
			result.Skipped++
		default:
			result.Failed++
			uc.log.Warn().
				Str("tenant_id", tenant.ID).
				Str("error", outcome.Error).
				Msg("facturación de período falló para el tenant")
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	uc.log.Info().
		Int("billed", result.Billed).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Str("total", result.TotalAmount.String()).
		Msg("corrida de facturación de período terminada")
	return result, nil
}

// billTenant factura un solo tenant dentro de su propia transacción.
// La verificación de existencia y el insert van en la misma tx; si otra
// corrida gana la carrera, el insert falla con ErrDuplicate y el tenant se
// reporta como skipped, nunca como error.
func (uc *PeriodBillingUseCase) billTenant(ctx context.Context, actorID string, tenant *entity.Tenant, periodStart, periodEnd time.Time) dto.TenantBillingOutcome {
	count, err := uc.individualRepo.CountBillableByTenant(tenant.ID)
	if err != nil {
		return dto.TenantBillingOutcome{TenantID: tenant.ID, Status: "error", Amount: decimal.Zero, Error: err.Error()}
	}

	charge, err := billing.ComputePeriodCharge(tenant.Tier, tenant.BaseFee, count, uc.overageRate)
	if err != nil {
		return dto.TenantBillingOutcome{TenantID: tenant.ID, Status: "error", Amount: decimal.Zero, Error: err.Error()}
	}

	now := uc.clock()
	settlement := &entity.Settlement{
		ID:          uuid.New().String(),
		TenantID:    tenant.ID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		BaseAmount:  charge.Base,
		ExtraUnits:  charge.ExtraUnits,
		ExtraAmount: charge.Extra,
		TotalAmount: charge.Total,
		Status:      entity.SettlementOutstanding,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunSettlement(ctx, func(
		settlementRepo repository.SettlementRepository,
		auditRepo repository.AuditRepository,
	) error {
		existing, err := settlementRepo.GetByTenantAndPeriod(tenant.ID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		// Si una corrida concurrente pasó la verificación al mismo tiempo,
		// el constraint único hace fallar este insert con ErrDuplicate y la
		// tx se revierte completa (incluida la bitácora).
		if err := settlementRepo.Create(settlement); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			TenantID:   &tenant.ID,
			ActorID:    actorID,
			Action:     entity.AuditSettlementCreated,
			EntityType: entity.EntitySettlement,
			EntityID:   settlement.ID,
			Detail: map[string]any{
				"period_start": periodStart.Format("2006-01-02"),
				"period_end":   periodEnd.Format("2006-01-02"),
				"billable":     count,
				"extra_units":  charge.ExtraUnits,
				"total":        charge.Total.String(),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return dto.TenantBillingOutcome{TenantID: tenant.ID, Status: "skipped", Amount: decimal.Zero}
		}
		return dto.TenantBillingOutcome{TenantID: tenant.ID, Status: "error", Amount: decimal.Zero, Error: err.Error()}
	}
	return dto.TenantBillingOutcome{TenantID: tenant.ID, Status: "billed", Amount: charge.Total}
}

// parsePeriod valida y convierte las fechas del período (formato 2006-01-02).
func parsePeriod(start, end string) (time.Time, time.Time, error) {
	periodStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	periodEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	if !periodStart.Before(periodEnd) {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	return periodStart, periodEnd, nil
}
