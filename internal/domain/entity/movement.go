package entity

import "time"

// MovementType cataloga un tipo de movimiento de inventario.
// Inbound marca la dirección (entrada suma, salida resta) y AffectsStock
// permite registrar movimientos que no alteran la cantidad (ej. reubicación
// entre sedes): quedan en el historial con cantidad_antes == cantidad_después.
type MovementType struct {
	ID           string
	Name         string
	Description  string
	Inbound      bool
	AffectsStock bool
	Active       bool
}

// Movement es una entrada del libro de movimientos: delta de cantidad con
// snapshot antes/después, actor y motivo. Se crea una vez y nunca se muta ni
// se borra; el historial es la pista de auditoría del stock.
type Movement struct {
	ID             string
	ProductID      string
	TypeID         string
	Quantity       int64 // siempre positivo; la dirección la da el tipo
	QuantityBefore int64
	QuantityAfter  int64
	ActorID        string
	Reason         string
	Reference      string  // factura, orden, acta, etc.
	OriginID       *string // sede origen
	DestinationID  *string // sede destino
	CreatedAt      time.Time
}
