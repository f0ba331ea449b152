package repository

import (
	"time"

	"github.com/jhoicas/activos-ti/internal/domain/entity"
)

// LicenseRepository persistencia de licencias.
type LicenseRepository interface {
	Create(license *entity.License) error
	GetByID(id string) (*entity.License, error)
	// GetByIDForUpdate bloquea la fila de la licencia para el
	// check-then-decrement del contador de puestos.
	GetByIDForUpdate(id string) (*entity.License, error)
	UpdateAvailableSeats(id string, available int) error
	UpdateEncryptedKey(id string, ciphertext string) error
	List(limit, offset int) ([]*entity.License, error)
}

// LicenseAssignmentRepository persistencia de asignaciones licencia-producto.
// Las asignaciones se desactivan, nunca se borran (pista de auditoría).
type LicenseAssignmentRepository interface {
	Create(assignment *entity.LicenseAssignment) error
	// GetActive devuelve la asignación activa del par (licencia, producto),
	// o nil si no existe.
	GetActive(licenseID, productID string) (*entity.LicenseAssignment, error)
	Deactivate(id string, removedAt time.Time) error
	ListByLicense(licenseID string) ([]*entity.LicenseAssignment, error)
}
