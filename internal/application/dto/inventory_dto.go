package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
type ApplyMovementRequest struct {
	ProductID     string  `json:"product_id"`
	TypeID        string  `json:"type_id"`
	Quantity      int64   `json:"quantity"`
	ActorID       string  `json:"actor_id"`
	Reason        string  `json:"reason"`
	Reference     string  `json:"reference,omitempty"`
	OriginID      *string `json:"origin_id,omitempty"`
	DestinationID *string `json:"destination_id,omitempty"`
}

// MovementResponse un movimiento del libro en respuestas.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	TypeID         string    `json:"type_id"`
	Quantity       int64     `json:"quantity"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	ActorID        string    `json:"actor_id"`
	Reason         string    `json:"reason"`
	Reference      string    `json:"reference,omitempty"`
	OriginID       *string   `json:"origin_id,omitempty"`
	DestinationID  *string   `json:"destination_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssignLicenseRequest body para POST /api/licenses/:id/assignments.
type AssignLicenseRequest struct {
	ProductID string `json:"product_id"`
	Notes     string `json:"notes,omitempty"`
}

// LicenseStatusResponse licencia con su estado de vencimiento.
type LicenseStatusResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	TotalSeats     int        `json:"total_seats"`
	AvailableSeats int        `json:"available_seats"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ExpiryStatus   string     `json:"expiry_status"`
	DaysLeft       *int       `json:"days_left,omitempty"`
	Active         bool       `json:"active"`
}

// SecretRequest body para guardar un secreto (clave o contraseña) en texto
// plano; la API lo persiste solo cifrado.
type SecretRequest struct {
	Value string `json:"value"`
}

// SecretResponse secreto revelado. Set distingue "sin secreto registrado"
// de un valor vacío.
type SecretResponse struct {
	Value string `json:"value"`
	Set   bool   `json:"set"`
}
