package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del cargo plataforma → tenant.
const (
	SettlementOutstanding = "OUTSTANDING"
	SettlementSettled     = "SETTLED"
)

// Settlement es el cargo de suscripción de un tenant para un período.
// Invariante central de idempotencia: existe a lo sumo una fila por
// (tenant_id, period_start, period_end); lo respalda un constraint único.
// Invariante monetario: TotalAmount = BaseAmount + ExtraAmount.
type Settlement struct {
	ID          string
	TenantID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	BaseAmount  decimal.Decimal
	ExtraUnits  int
	ExtraAmount decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string // OUTSTANDING | SETTLED
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
