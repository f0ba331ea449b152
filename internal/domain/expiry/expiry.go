// Package expiry clasifica fechas de vencimiento de licencias y cuentas.
// Es una función pura de la fecha almacenada contra "ahora": no hay máquina
// de estados persistida.
package expiry

import "time"

// Status categoría de vencimiento.
type Status string

const (
	StatusNoDate     Status = "sin_fecha"
	StatusExpired    Status = "vencida"
	StatusNearExpiry Status = "proximo_vencimiento"
	StatusCurrent    Status = "vigente"
)

// NearExpiryDays ventana de aviso previo al vencimiento.
const NearExpiryDays = 30

// DaysLeft días hasta el vencimiento (negativo si ya venció).
// El cálculo es por día calendario, no por horas transcurridas.
func DaysLeft(expiresAt time.Time, now time.Time) int {
	e := expiresAt.Truncate(24 * time.Hour)
	n := now.Truncate(24 * time.Hour)
	return int(e.Sub(n).Hours() / 24)
}

// Classify determina el estado de vencimiento para una fecha opcional.
func Classify(expiresAt *time.Time, now time.Time) Status {
	if expiresAt == nil {
		return StatusNoDate
	}
	days := DaysLeft(*expiresAt, now)
	switch {
	case days < 0:
		return StatusExpired
	case days <= NearExpiryDays:
		return StatusNearExpiry
	default:
		return StatusCurrent
	}
}
