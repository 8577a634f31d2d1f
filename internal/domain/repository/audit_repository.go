package repository

import "github.com/jhoicas/eduledger-api/internal/domain/entity"

// AuditRepository puerto de la bitácora financiera. Solo inserción y
// lectura paginada: el registro es inmutable por contrato.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
	// ListByTenant devuelve entradas del tenant ordenadas de la más
	// reciente a la más antigua. Uso exclusivo de vistas de operador;
	// el motor nunca lee su propia bitácora para decidir.
	ListByTenant(tenantID string, limit, offset int) ([]*entity.AuditEntry, error)
}
