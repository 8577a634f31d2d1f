package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/domain"
)

// BillingHandler maneja las operaciones de plataforma del motor contable:
// corrida de facturación de período, escáner de vencidas y liquidación de
// cargos de período.
type BillingHandler struct {
	billingUC *ledger.PeriodBillingUseCase
	scanUC    *ledger.OverdueScanUseCase
	settleUC  *ledger.SettlePaymentUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	billingUC *ledger.PeriodBillingUseCase,
	scanUC *ledger.OverdueScanUseCase,
	settleUC *ledger.SettlePaymentUseCase,
) *BillingHandler {
	return &BillingHandler{billingUC: billingUC, scanUC: scanUC, settleUC: settleUC}
}

// RunPeriodBilling ejecuta la facturación del período sobre todos los
// tenants activos. Reejecutarla con el mismo período es un no-op (skipped).
// POST /api/platform/billing/run
func (h *BillingHandler) RunPeriodBilling(c *fiber.Ctx) error {
	var in dto.RunPeriodBillingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.billingUC.Run(c.Context(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidPeriod {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "período inválido: formato 2006-01-02 y inicio < fin"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// RunOverdueScan ejecuta el escáner de facturas vencidas.
// POST /api/platform/billing/overdue-scan
func (h *BillingHandler) RunOverdueScan(c *fiber.Ctx) error {
	result, err := h.scanUC.Scan(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// SettleSettlement registra el pago de un cargo de período (OUTSTANDING → SETTLED).
// POST /api/platform/settlements/:id/settle
func (h *BillingHandler) SettleSettlement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	result, err := h.settleUC.SettleSettlement(c.Context(), GetUserID(c), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cargo de período no encontrado"})
		}
		if err == domain.ErrAlreadySettled {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_SETTLED", Message: "el cargo ya fue saldado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// ListTenantSettlements lista los cargos de período de un tenant (vista plataforma).
// GET /api/platform/tenants/:id/settlements
func (h *BillingHandler) ListTenantSettlements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	result, err := h.settleUC.ListSettlements(c.Context(), id, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// ListOwnSettlements lista los cargos de período del tenant autenticado.
// GET /api/settlements
func (h *BillingHandler) ListOwnSettlements(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin tenant"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	result, err := h.settleUC.ListSettlements(c.Context(), tenantID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}
