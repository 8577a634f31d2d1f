package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
)

// AuditHandler expone la bitácora financiera en modo solo lectura.
type AuditHandler struct {
	uc *ledger.AuditQueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *ledger.AuditQueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List lista las entradas de bitácora del tenant, de la más reciente a la
// más antigua.
// GET /api/audit
func (h *AuditHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin tenant"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	entries, err := h.uc.ListByTenant(c.Context(), tenantID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(entries)
}
