package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta gestionada (Office 365, Google Workspace, etc.).
const (
	AccountTypeOffice365 = "office365"
	AccountTypeGoogle    = "google"
	AccountTypeAWS       = "aws"
	AccountTypeAzure     = "azure"
	AccountTypeOther     = "otro"
)

// Estados de una cuenta.
const (
	AccountStateActive    = "activa"
	AccountStateInactive  = "inactiva"
	AccountStateSuspended = "suspendida"
	AccountStateExpired   = "vencida"
)

// Account es una cuenta de servicio o suscripción. EncryptedPassword es
// texto cifrado opaco del vault (dominio "account"); vacío = sin contraseña
// registrada.
type Account struct {
	ID                string
	Name              string
	Type              string
	Email             string
	Username          string
	EncryptedPassword string
	AccessURL         string
	Plan              string
	MonthlyCost       decimal.Decimal
	Vendor            string
	ExpiresAt         *time.Time
	State             string
	AssigneeID        *string
	LocationID        *string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Device es un equipo de red con credenciales de administración.
// EncryptedPassword pertenece al dominio "device" del vault.
type Device struct {
	ID                string
	Name              string
	Host              string
	Model             string
	Serial            string
	Username          string
	EncryptedPassword string
	LocationID        *string
	Active            bool
	CreatedAt         time.Time
}
