package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto (activo de TI).
const (
	ProductStateActive      = "activo"
	ProductStateInactive    = "inactivo"
	ProductStateMaintenance = "mantenimiento"
	ProductStateRetired     = "retirado"
)

// Product representa un activo de TI del inventario.
// Quantity es la cantidad autoritativa y SOLO se modifica a través del
// libro de movimientos (application/ledger); nunca con un update directo.
type Product struct {
	ID          string
	Code        string // código único generado por categoría (ej. IMP-00001)
	Name        string
	Description string
	CategoryID  string
	Brand       string
	Model       string
	Serial      string
	LocationID  *string // sede donde está el activo
	AssigneeID  *string // personal asignado
	State       string
	Quantity    int64
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el producto admite movimientos.
func (p *Product) IsActive() bool {
	return p.State == ProductStateActive || p.State == ProductStateMaintenance
}

// TotalValue calcula el valor total (precio unitario * cantidad).
func (p *Product) TotalValue() decimal.Decimal {
	if p.Quantity <= 0 {
		return decimal.Zero
	}
	return p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
}
