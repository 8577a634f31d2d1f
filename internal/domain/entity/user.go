package entity

import "time"

// Roles de la aplicación.
// platform opera la plataforma completa (facturación de períodos, tenants);
// admin y tesorero actúan dentro de su colegio.
const (
	RolePlatform = "platform"
	RoleAdmin    = "admin"
	RoleTesorero = "tesorero"
)

// User es un usuario operador de la API.
// TenantID vacío identifica a los operadores de plataforma.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
