package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/application/usecase"
	"github.com/jhoicas/eduledger-api/internal/domain"
)

// IndividualHandler expone el directorio de individuos facturables en modo
// solo lectura; la escritura es del módulo académico.
type IndividualHandler struct {
	uc *usecase.IndividualUseCase
}

// NewIndividualHandler construye el handler.
func NewIndividualHandler(uc *usecase.IndividualUseCase) *IndividualHandler {
	return &IndividualHandler{uc: uc}
}

// List lista los individuos del tenant.
// GET /api/individuals
func (h *IndividualHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin tenant"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	result, err := h.uc.List(c.Context(), tenantID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// GetByID obtiene un individuo del tenant.
// GET /api/individuals/:id
func (h *IndividualHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	result, err := h.uc.GetByID(c.Context(), tenantID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "individuo no encontrado"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}
