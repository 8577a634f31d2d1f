package assets

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// AssetTxRunner ejecuta una función dentro de una transacción que incluye el
// repo de activos, el de facturas y la bitácora: el cambio de estado del
// activo y la emisión del cobro de reposición van en una sola tx.
type AssetTxRunner interface {
	RunAssetCharge(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// ChargeIssuer integra el módulo de activos con el motor contable.
// IssueLifecycleChargeInTx emite (o reutiliza) la factura del evento usando
// los repositorios del caller, es decir en la MISMA transacción; si devuelve
// error, el caller revierte todo. Lo implementa ledger.ChargeUseCase.
type ChargeIssuer interface {
	IssueLifecycleChargeInTx(
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
		tenantID, actorID, individualID, title string,
		amount decimal.Decimal,
		triggerType, triggerEntityID string,
		now time.Time,
	) (*entity.FeeInvoice, bool, error)
}
