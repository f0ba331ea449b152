package repository

import "github.com/jhoicas/activos-ti/internal/domain/entity"

// CategoryRepository catálogo de categorías y su contador de códigos.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// NextCodeSeq incrementa y devuelve el contador de códigos de la
	// categoría de forma atómica (una fila contador por categoría).
	NextCodeSeq(categoryID string) (int64, error)
	List() ([]*entity.Category, error)
}

// AccountRepository persistencia de cuentas gestionadas.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	UpdateEncryptedPassword(id string, ciphertext string) error
	List(limit, offset int) ([]*entity.Account, error)
}

// DeviceRepository persistencia de equipos de red.
type DeviceRepository interface {
	Create(device *entity.Device) error
	GetByID(id string) (*entity.Device, error)
	UpdateEncryptedPassword(id string, ciphertext string) error
}
