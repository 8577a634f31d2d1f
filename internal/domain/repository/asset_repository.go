package repository

import (
	"time"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

// AssetRepository puerto de persistencia para activos escolares.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Asset, error)
	// Assign fija el responsable actual y pasa el activo a ASSIGNED.
	Assign(id, individualID string, now time.Time) error
	// UpdateStatus cambia el estado del activo (ej. ASSIGNED → LOST).
	UpdateStatus(id, status string, now time.Time) error
}
