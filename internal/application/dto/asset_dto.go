package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest body para POST /api/assets.
type CreateAssetRequest struct {
	Name             string          `json:"name"`
	Serial           string          `json:"serial,omitempty"`
	ReplacementPrice decimal.Decimal `json:"replacement_price"`
}

// AssignAssetRequest body para POST /api/assets/:id/assign.
type AssignAssetRequest struct {
	IndividualID string `json:"individual_id"`
}

// AssetResponse activo en respuestas.
type AssetResponse struct {
	ID               string          `json:"id"`
	TenantID         string          `json:"tenant_id"`
	Name             string          `json:"name"`
	Serial           string          `json:"serial,omitempty"`
	HolderID         string          `json:"holder_id,omitempty"`
	ReplacementPrice decimal.Decimal `json:"replacement_price"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// MarkAssetLostResult resultado de marcar un activo como perdido:
// el activo queda LOST y se referencia la factura de reposición emitida
// (nueva o reutilizada si el mismo evento ya tenía una factura abierta).
type MarkAssetLostResult struct {
	AssetID   string `json:"asset_id"`
	Status    string `json:"status"`
	InvoiceID string `json:"invoice_id"`
	Reused    bool   `json:"reused"`
}
