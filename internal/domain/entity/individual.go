package entity

import "time"

// Individual es una persona facturable dentro de un tenant (acudiente/pagador
// vinculado a un alumno). El motor contable lo consume en modo solo lectura;
// el módulo académico es el dueño del registro.
type Individual struct {
	ID        string
	TenantID  string
	FullName  string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
