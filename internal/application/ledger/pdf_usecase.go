package ledger

import (
	"context"

	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// ReceiptPDFGenerator genera el comprobante imprimible de una factura de
// cobro. Lo implementa infrastructure/pdf con Maroto.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, invoice *entity.FeeInvoice, tenant *entity.Tenant, individual *entity.Individual) ([]byte, error)
}

// ReceiptPDFUseCase arma el comprobante PDF de una factura del tenant.
type ReceiptPDFUseCase struct {
	invoiceRepo    repository.FeeInvoiceRepository
	tenantRepo     repository.TenantRepository
	individualRepo repository.IndividualRepository
	generator      ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(
	invoiceRepo repository.FeeInvoiceRepository,
	tenantRepo repository.TenantRepository,
	individualRepo repository.IndividualRepository,
	generator ReceiptPDFGenerator,
) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{
		invoiceRepo:    invoiceRepo,
		tenantRepo:     tenantRepo,
		individualRepo: individualRepo,
		generator:      generator,
	}
}

// GetInvoicePDF genera el PDF del comprobante. GET /api/invoices/:id/pdf.
func (uc *ReceiptPDFUseCase) GetInvoicePDF(ctx context.Context, tenantID, invoiceID string) ([]byte, error) {
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
	tenant, err := uc.tenantRepo.GetByID(invoice.TenantID)
	if err != nil || tenant == nil {
		return nil, domain.ErrNotFound
	}
	individual, err := uc.individualRepo.GetByID(invoice.IndividualID)
	if err != nil || individual == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, invoice, tenant, individual)
}
