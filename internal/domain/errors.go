package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrNoSeatsAvailable     = errors.New("no hay licencias disponibles para asignar")
	ErrDuplicateAssignment  = errors.New("la licencia ya está asignada a este producto")
	ErrInvalidCiphertext    = errors.New("no se pudo descifrar el secreto")
	ErrMissingEncryptionKey = errors.New("clave de cifrado no configurada")
)
