package repository

import (
	"time"

	"github.com/jhoicas/activos-ti/internal/domain/entity"
)

// ProductRepository persistencia de productos.
// La cantidad solo se actualiza vía UpdateQuantity dentro de la misma
// transacción que crea el movimiento correspondiente.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE)
	// para serializar lecturas/escrituras concurrentes de la cantidad.
	GetByIDForUpdate(id string) (*entity.Product, error)
	UpdateQuantity(id string, quantity int64, updatedAt time.Time) error
	List(limit, offset int) ([]*entity.Product, error)
}
