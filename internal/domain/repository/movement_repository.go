package repository

import "github.com/jhoicas/activos-ti/internal/domain/entity"

// MovementRepository persistencia del libro de movimientos.
// La tabla es append-only: no existen operaciones de update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProduct devuelve el historial de un producto, más reciente primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
}

// MovementTypeRepository catálogo de tipos de movimiento.
type MovementTypeRepository interface {
	GetByID(id string) (*entity.MovementType, error)
	List() ([]*entity.MovementType, error)
}
