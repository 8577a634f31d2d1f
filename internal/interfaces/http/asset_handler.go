package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eduledger-api/internal/application/assets"
	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
)

// AssetHandler maneja el registro de activos y su ciclo de vida.
type AssetHandler struct {
	uc *assets.AssetUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *assets.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create registra un activo del colegio.
// POST /api/assets
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token sin tenant"})
	}
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asset, err := h.uc.Create(c.Context(), tenantID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y precio de reposición no negativo requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

// Assign asigna el activo a un individuo responsable.
// POST /api/assets/:id/assign
func (h *AssetHandler) Assign(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.AssignAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asset, err := h.uc.Assign(c.Context(), tenantID, id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "individuo requerido y activo"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el activo no admite asignación en su estado actual"})
		}
		return assetError(c, err)
	}
	return c.JSON(asset)
}

// MarkLost marca el activo como perdido y emite el cobro de reposición al
// responsable actual, todo en una sola operación atómica.
// POST /api/assets/:id/lost
func (h *AssetHandler) MarkLost(c *fiber.Ctx) error {
	tenantID, userID := GetTenantID(c), GetUserID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	result, err := h.uc.MarkLost(c.Context(), tenantID, userID, id)
	if err != nil {
		if err == domain.ErrAssetNoHolder {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_HOLDER", Message: "el activo no tiene responsable asignado"})
		}
		if err == domain.ErrAssetNoPrice {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PRICE", Message: "el activo no tiene precio de reposición"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el activo no admite la transición en su estado actual"})
		}
		return assetError(c, err)
	}
	return c.JSON(result)
}

// GetByID obtiene un activo del tenant.
// GET /api/assets/:id
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	asset, err := h.uc.GetByID(c.Context(), tenantID, id)
	if err != nil {
		return assetError(c, err)
	}
	return c.JSON(asset)
}

// List lista los activos del tenant.
// GET /api/assets
func (h *AssetHandler) List(c *fiber.Ctx) error {
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

func assetError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	if err == domain.ErrForbidden {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
