package repository

import (
	"time"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

// FeeInvoiceRepository puerto de persistencia para facturas de cobro.
type FeeInvoiceRepository interface {
	Create(invoice *entity.FeeInvoice) error
	GetByID(id string) (*entity.FeeInvoice, error)
	// FindOpenByTrigger busca una factura PENDING u OVERDUE del individuo
	// con la misma clave estructurada (trigger_type, trigger_entity_id).
	// Clave de deduplicación de los cobros automáticos.
	FindOpenByTrigger(individualID, triggerType, triggerEntityID string) (*entity.FeeInvoice, error)
	// FindOpenByTitle deduplicación por título exacto, para cobros sin
	// clave estructurada.
	FindOpenByTitle(individualID, title string) (*entity.FeeInvoice, error)
	// ListDueBefore devuelve facturas PENDING con vencimiento <= now.
	// Consulta del escáner de vencidas; excluye OVERDUE/PAID/VOID para que
	// reejecutar el escáner sea un no-op sobre ellas.
	ListDueBefore(now time.Time, limit int) ([]*entity.FeeInvoice, error)
	ListByTenant(tenantID, status string, limit, offset int) ([]*entity.FeeInvoice, error)
	// UpdateStatusIf transiciona status de forma condicional: solo si el
	// estado actual está en from. Devuelve false si no hubo transición.
	UpdateStatusIf(id string, from []string, to string, now time.Time) (bool, error)
}
