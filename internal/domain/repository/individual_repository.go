package repository

import "github.com/jhoicas/eduledger-api/internal/domain/entity"

// IndividualRepository puerto de lectura sobre el directorio de individuos
// facturables. El módulo académico es dueño de la escritura; el motor
// contable solo consulta.
type IndividualRepository interface {
	GetByID(id string) (*entity.Individual, error)
	// CountBillableByTenant cuenta los individuos activos de un tenant,
	// insumo del cálculo de excedente del período.
	CountBillableByTenant(tenantID string) (int, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Individual, error)
}
