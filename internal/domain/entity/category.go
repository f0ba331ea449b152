package entity

import "time"

// Category categoría de productos. Su contador de códigos (PREFIJO-00001)
// vive en una fila dedicada que se incrementa atómicamente en BD; ver
// CategoryRepository.NextCodeSeq.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Location sede de la empresa.
type Location struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// Staff personal de la empresa (asignatario de activos y cuentas).
type Staff struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Position   string
	LocationID string
	Active     bool
	CreatedAt  time.Time
}

// FullName nombre completo para mostrar.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}
