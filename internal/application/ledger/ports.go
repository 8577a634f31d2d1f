package ledger

import (
	"context"

	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// LedgerTxRunner ejecuta una función dentro de una transacción con los repos
// del motor contable atados a la tx. La entrada de bitácora se escribe con el
// mismo auditRepo, de modo que un fallo revierte también la mutación financiera.
type LedgerTxRunner interface {
	// RunSettlement transacción sobre cargos de período + bitácora.
	RunSettlement(ctx context.Context, fn func(
		settlementRepo repository.SettlementRepository,
		auditRepo repository.AuditRepository,
	) error) error

	// RunInvoice transacción sobre facturas de cobro + bitácora.
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// AlertDispatcher acepta la alerta de una factura vencida. La entrega real
// (push/SMS/in-app) es responsabilidad de un colaborador externo; el escáner
// solo decide qué facturas califican.
type AlertDispatcher interface {
	DispatchOverdueAlert(ctx context.Context, invoiceID, individualID string) error
}
