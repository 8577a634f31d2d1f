package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de cobro tenant → individuo.
// Transiciones permitidas: PENDING→OVERDUE (escáner de vencidas),
// PENDING/OVERDUE→PAID (liquidación), PENDING/OVERDUE→VOID (anulación).
// Una factura PAID nunca se elimina ni vuelve a transicionar.
const (
	InvoicePending = "PENDING"
	InvoiceOverdue = "OVERDUE"
	InvoicePaid    = "PAID"
	InvoiceVoid    = "VOID"
)

// Tipos de evento que originan cobros automáticos.
const (
	TriggerAssetLost = "asset_lost"
)

// FeeInvoice es un cobro de un tenant a un individuo.
// Para cobros automáticos, (TriggerType, TriggerEntityID) es la clave de
// deduplicación estructurada; Title queda como descripción presentacional.
type FeeInvoice struct {
	ID              string
	TenantID        string
	IndividualID    string
	Title           string
	Amount          decimal.Decimal // siempre > 0
	DueDate         time.Time
	Status          string // PENDING | OVERDUE | PAID | VOID
	TriggerType     string // vacío para cobros directos
	TriggerEntityID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Open informa si la factura sigue cobrable (participa en deduplicación).
func (f *FeeInvoice) Open() bool {
	return f.Status == InvoicePending || f.Status == InvoiceOverdue
}
