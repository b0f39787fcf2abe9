package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autenticado")
	ErrForbidden         = errors.New("permisos insuficientes")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidStatus     = errors.New("transición de estado inválida")
	ErrMissingFxRate     = errors.New("no existe tasa de cambio para el par de monedas")
	ErrOrgRequired       = errors.New("el usuario no está asociado a una organización")
	ErrProtectedResource = errors.New("recurso protegido del sistema")
)
