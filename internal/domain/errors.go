package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Motor de ledger / valoración periódica.
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAssetDisposed     = errors.New("activo dado de baja: no admite más depreciación")
	ErrNegativeNetPay    = errors.New("los descuentos exceden el ingreso del período")
	ErrDuplicatePeriod   = errors.New("el período ya fue procesado para la entidad")
	ErrEmployeeInactive  = errors.New("empleado inactivo: no admite rol de pagos")
)
