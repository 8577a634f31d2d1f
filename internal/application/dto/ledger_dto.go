package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunPeriodBillingRequest body para POST /api/platform/billing/run.
// Fechas en formato 2006-01-02.
type RunPeriodBillingRequest struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// TenantBillingOutcome resultado por tenant de una corrida de facturación.
// Status: billed | skipped | error.
type TenantBillingOutcome struct {
	TenantID string          `json:"tenant_id"`
	Status   string          `json:"status"`
	Amount   decimal.Decimal `json:"amount"`
	Error    string          `json:"error,omitempty"`
}

// PeriodBillingResult agregado de una corrida de facturación de período.
type PeriodBillingResult struct {
	Billed      int                    `json:"billed"`
	Skipped     int                    `json:"skipped"`
	Failed      int                    `json:"failed"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Outcomes    []TenantBillingOutcome `json:"outcomes"`
}

// SettlementResponse cargo de período en respuestas.
type SettlementResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	ExtraUnits  int             `json:"extra_units"`
	ExtraAmount decimal.Decimal `json:"extra_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ChargeRequest body para POST /api/invoices (cobro directo a un individuo).
type ChargeRequest struct {
	IndividualID string          `json:"individual_id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	DueDays      int             `json:"due_days,omitempty"` // 0 = valor por defecto configurado
	// DedupByTitle activa la deduplicación por título exacto contra
	// facturas abiertas del mismo individuo.
	DedupByTitle bool `json:"dedup_by_title,omitempty"`
}

// ChargeResult id de la factura creada o reutilizada.
type ChargeResult struct {
	InvoiceID string `json:"invoice_id"`
	Reused    bool   `json:"reused"`
}

// InvoiceResponse factura de cobro en respuestas.
type InvoiceResponse struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	IndividualID    string          `json:"individual_id"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         string          `json:"due_date"`
	Status          string          `json:"status"`
	TriggerType     string          `json:"trigger_type,omitempty"`
	TriggerEntityID string          `json:"trigger_entity_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OverdueScanResult resultado de una corrida del escáner de vencidas.
type OverdueScanResult struct {
	Scanned      int `json:"scanned"`
	Transitioned int `json:"transitioned"`
	AlertsQueued int `json:"alerts_queued"`
}

// SettleResult estado final tras liquidar un instrumento de cobro.
type SettleResult struct {
	ID     string `json:"id"`
	Status string `json:"status"` // PAID | SETTLED
}

// AuditEntryResponse entrada de bitácora para vistas de operador.
type AuditEntryResponse struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"tenant_id,omitempty"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
