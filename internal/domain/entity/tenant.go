package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Planes de suscripción de la plataforma. El límite de individuos incluidos
// por plan vive en domain/billing (tabla fija plan → límite).
const (
	TierSmall  = "SMALL"
	TierMedium = "MEDIUM"
	TierLarge  = "LARGE"
)

// Tenant representa un colegio suscrito a la plataforma.
// Nunca se elimina físicamente: se desactiva con Active = false.
type Tenant struct {
	ID        string
	Name      string
	Tier      string          // SMALL | MEDIUM | LARGE
	BaseFee   decimal.Decimal // cuota mensual base del plan
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidTier informa si el plan pertenece al conjunto cerrado.
func ValidTier(tier string) bool {
	switch tier {
	case TierSmall, TierMedium, TierLarge:
		return true
	}
	return false
}
