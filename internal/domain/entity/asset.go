package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un activo escolar (tablet, libro, instrumento...).
const (
	AssetAvailable = "AVAILABLE"
	AssetAssigned  = "ASSIGNED"
	AssetLost      = "LOST"
	AssetRetired   = "RETIRED"
)

// Asset es un bien del colegio que puede estar asignado a un individuo.
// Marcarlo como LOST dispara el cobro del precio de reposición al
// responsable actual (facturación por ciclo de vida).
type Asset struct {
	ID               string
	TenantID         string
	Name             string
	Serial           string
	HolderID         *string // individuo responsable; nil si no está asignado
	ReplacementPrice decimal.Decimal
	Status           string // AVAILABLE | ASSIGNED | LOST | RETIRED
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
