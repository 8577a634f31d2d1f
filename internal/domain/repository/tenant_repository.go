package repository

import "github.com/jhoicas/eduledger-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para colegios (tenants).
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	// Update modifica nombre, plan, cuota base y bandera de actividad.
	Update(tenant *entity.Tenant) error
	List(limit, offset int) ([]*entity.Tenant, error)
	// ListActive devuelve los tenants activos, insumo del cálculo de período.
	ListActive() ([]*entity.Tenant, error)
}
