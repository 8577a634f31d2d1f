package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrInvalidPeriod  = errors.New("período de facturación inválido")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Resultados "ya ocurrió": no son fallas, el caller los reporta como tal.
	ErrAlreadyPaid    = errors.New("la factura ya está pagada")
	ErrAlreadySettled = errors.New("el cargo del período ya está saldado")

	// Precondiciones del cobro por pérdida de activo.
	ErrAssetNoHolder = errors.New("el activo no tiene responsable asignado")
	ErrAssetNoPrice  = errors.New("el activo no tiene precio de reposición")
)
