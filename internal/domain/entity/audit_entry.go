package entity

import "time"

// Acciones registradas en la bitácora financiera.
const (
	AuditSettlementCreated = "settlement.created"
	AuditSettlementSettled = "settlement.settled"
	AuditInvoiceCreated    = "invoice.created"
	AuditInvoiceOverdue    = "invoice.overdue"
	AuditInvoicePaid       = "invoice.paid"
	AuditInvoiceVoided     = "invoice.voided"
	AuditAssetLost         = "asset.lost"
)

// Tipos de entidad referenciados por la bitácora.
const (
	EntitySettlement = "settlement"
	EntityFeeInvoice = "fee_invoice"
	EntityAsset      = "asset"
)

// AuditEntry es un registro inmutable de una mutación financiera.
// Solo se inserta; no existen operaciones de update ni delete. Se escribe
// dentro de la misma transacción que la mutación que describe, de modo que
// un fallo del registro revierte también la mutación.
type AuditEntry struct {
	ID         string
	TenantID   *string // nil para acciones a nivel plataforma
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any // se persiste como JSONB
	CreatedAt  time.Time
}
