package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de licencia de software.
const (
	LicenseTypePerpetual = "perpetua"
	LicenseTypeAnnual    = "anual"
	LicenseTypeMonthly   = "mensual"
	LicenseTypeOther     = "otro"
)

// Tipos de distribución.
const (
	DistributionOEM    = "oem"
	DistributionRetail = "retail"
	DistributionVolume = "volume"
	DistributionOther  = "otro"
)

// License representa una licencia de software con un pool contado de puestos.
// Invariante: 0 <= AvailableSeats <= TotalSeats en todo momento; el contador
// solo cambia bajo bloqueo de fila junto con la asignación correspondiente.
// EncryptedKey es texto cifrado opaco producido por el vault (dominio "license");
// vacío significa "sin clave registrada".
type License struct {
	ID             string
	Name           string
	Type           string
	Distribution   string
	Vendor         string
	AcquiredAt     *time.Time
	ExpiresAt      *time.Time
	Price          decimal.Decimal
	TotalSeats     int
	AvailableSeats int
	EncryptedKey   string
	Active         bool
	Notes          string
	CreatedAt      time.Time
}

// AssignedSeats puestos actualmente ocupados.
func (l *License) AssignedSeats() int {
	return l.TotalSeats - l.AvailableSeats
}

// LicenseAssignment relación licencia-producto. Única por par (licencia,
// producto) mientras esté activa; al quitarla se desactiva, no se borra,
// para conservar el historial de asignaciones.
type LicenseAssignment struct {
	ID         string
	LicenseID  string
	ProductID  string
	Active     bool
	Notes      string
	AssignedAt time.Time
	RemovedAt  *time.Time
}
