package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/domain"
)

// InvoiceHandler maneja las facturas de cobro del tenant autenticado.
type InvoiceHandler struct {
	chargeUC *ledger.ChargeUseCase
	settleUC *ledger.SettlePaymentUseCase
	pdfUC    *ledger.ReceiptPDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	chargeUC *ledger.ChargeUseCase,
	settleUC *ledger.SettlePaymentUseCase,
	pdfUC *ledger.ReceiptPDFUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{chargeUC: chargeUC, settleUC: settleUC, pdfUC: pdfUC}
}

// Create emite un cobro directo a un individuo.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	tenantID, userID := GetTenantID(c), GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ChargeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.chargeUC.Charge(c.Context(), tenantID, userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "individuo, título y monto positivo requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "individuo no encontrado"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetByID obtiene una factura del tenant.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	invoice, err := h.chargeUC.GetInvoice(c.Context(), tenantID, id)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoice)
}

// List lista las facturas del tenant, con filtro opcional por estado.
// GET /api/invoices?status=PENDING
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin tenant"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	invoices, err := h.chargeUC.ListInvoices(c.Context(), tenantID, c.Query("status"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(invoices)
}

// Pay registra el pago completo de una factura (PENDING/OVERDUE → PAID).
// POST /api/invoices/:id/pay
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	tenantID, userID := GetTenantID(c), GetUserID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	result, err := h.settleUC.PayInvoice(c.Context(), tenantID, userID, id)
	if err != nil {
		if err == domain.ErrAlreadyPaid {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "la factura ya fue pagada"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la factura no admite pago en su estado actual"})
		}
		return invoiceError(c, err)
	}
	return c.JSON(result)
}

// Void anula una factura abierta (PENDING/OVERDUE → VOID).
// POST /api/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	tenantID, userID := GetTenantID(c), GetUserID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	result, err := h.settleUC.VoidInvoice(c.Context(), tenantID, userID, id)
	if err != nil {
		if err == domain.ErrAlreadyPaid {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "una factura pagada no se puede anular"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la factura no admite anulación en su estado actual"})
		}
		return invoiceError(c, err)
	}
	return c.JSON(result)
}

// GetPDF genera el comprobante PDF de la factura.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, err := h.pdfUC.GetInvoicePDF(c.Context(), tenantID, id)
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="comprobante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

func invoiceError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	}
	if err == domain.ErrForbidden {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
