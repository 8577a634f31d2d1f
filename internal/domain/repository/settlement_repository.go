package repository

import (
	"time"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

// SettlementRepository puerto de persistencia para cargos de período.
type SettlementRepository interface {
	// Create inserta el cargo. Si ya existe una fila para
	// (tenant, period_start, period_end) devuelve domain.ErrDuplicate:
	// el constraint único de la tabla es el árbitro final entre corridas
	// concurrentes.
	Create(settlement *entity.Settlement) error
	GetByID(id string) (*entity.Settlement, error)
	GetByTenantAndPeriod(tenantID string, periodStart, periodEnd time.Time) (*entity.Settlement, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Settlement, error)
	// MarkSettled transiciona OUTSTANDING → SETTLED de forma condicional.
	// Devuelve false si la fila no estaba OUTSTANDING (ya saldada o inexistente).
	MarkSettled(id string, now time.Time) (bool, error)
}
