package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenantRequest body para POST /api/platform/tenants.
type CreateTenantRequest struct {
	Name    string          `json:"name"`
	Tier    string          `json:"tier"` // SMALL | MEDIUM | LARGE
	BaseFee decimal.Decimal `json:"base_fee"`
}

// UpdateTenantRequest body para PUT /api/platform/tenants/:id.
// Plan y cuota base los modifica el operador de plataforma; Active=false
// desactiva el tenant sin eliminarlo.
type UpdateTenantRequest struct {
	Name    string           `json:"name,omitempty"`
	Tier    string           `json:"tier,omitempty"`
	BaseFee *decimal.Decimal `json:"base_fee,omitempty"`
	Active  *bool            `json:"active,omitempty"`
}

// TenantResponse tenant en respuestas.
type TenantResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Tier      string          `json:"tier"`
	BaseFee   decimal.Decimal `json:"base_fee"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
