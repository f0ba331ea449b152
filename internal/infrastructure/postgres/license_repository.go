package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

var _ repository.LicenseRepository = (*LicenseRepo)(nil)
var _ repository.LicenseAssignmentRepository = (*LicenseAssignmentRepo)(nil)

const licenseColumns = `id, name, type, distribution, vendor, acquired_at, expires_at, price,
		total_seats, available_seats, encrypted_key, active, notes, created_at`

// LicenseRepo implementación de LicenseRepository sobre PostgreSQL.
type LicenseRepo struct {
	q Querier
}

// NewLicenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLicenseRepository(q Querier) *LicenseRepo {
	return &LicenseRepo{q: q}
}

// Create persiste una licencia nueva.
func (r *LicenseRepo) Create(l *entity.License) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO licenses (id, name, type, distribution, vendor, acquired_at, expires_at, price,
			total_seats, available_seats, encrypted_key, active, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Name, l.Type, l.Distribution, l.Vendor, l.AcquiredAt, l.ExpiresAt, l.Price,
		l.TotalSeats, l.AvailableSeats, l.EncryptedKey, l.Active, l.Notes, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create license: %w", err)
	}
	return nil
}

// GetByID obtiene una licencia. Devuelve nil si no existe.
func (r *LicenseRepo) GetByID(id string) (*entity.License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get license")
}

// GetByIDForUpdate obtiene la licencia bloqueando la fila (SELECT FOR UPDATE)
// para el check-then-decrement del contador de puestos.
func (r *LicenseRepo) GetByIDForUpdate(id string) (*entity.License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get license for update")
}

// UpdateAvailableSeats fija el contador de puestos disponibles.
// El CHECK de la tabla (0 <= available_seats <= total_seats) respalda el
// invariante aunque algún caller se salte el bloqueo de fila.
func (r *LicenseRepo) UpdateAvailableSeats(id string, available int) error {
	query := `UPDATE licenses SET available_seats = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, available)
	if err != nil {
		return fmt.Errorf("update available seats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEncryptedKey guarda el texto cifrado opaco de la clave de licencia.
func (r *LicenseRepo) UpdateEncryptedKey(id string, ciphertext string) error {
	query := `UPDATE licenses SET encrypted_key = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, ciphertext)
	if err != nil {
		return fmt.Errorf("update encrypted key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista licencias paginadas.
func (r *LicenseRepo) List(limit, offset int) ([]*entity.License, error) {
	query := `SELECT ` + licenseColumns + ` FROM licenses ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.License
	for rows.Next() {
		var l entity.License
		if err := scanLicense(rows, &l); err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LicenseRepo) scanOne(row pgx.Row, op string) (*entity.License, error) {
	var l entity.License
	if err := scanLicense(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

func scanLicense(row pgx.Row, l *entity.License) error {
	return row.Scan(
		&l.ID, &l.Name, &l.Type, &l.Distribution, &l.Vendor, &l.AcquiredAt, &l.ExpiresAt, &l.Price,
		&l.TotalSeats, &l.AvailableSeats, &l.EncryptedKey, &l.Active, &l.Notes, &l.CreatedAt,
	)
}

// LicenseAssignmentRepo implementación sobre PostgreSQL. Las asignaciones se
// desactivan, nunca se borran; un índice único parcial sobre (license_id,
// product_id) WHERE active garantiza una sola asignación activa por par.
type LicenseAssignmentRepo struct {
	q Querier
}

// NewLicenseAssignmentRepository construye el adaptador.
func NewLicenseAssignmentRepository(q Querier) *LicenseAssignmentRepo {
	return &LicenseAssignmentRepo{q: q}
}

// Create persiste una asignación. Par activo duplicado -> domain.ErrDuplicateAssignment.
func (r *LicenseAssignmentRepo) Create(a *entity.LicenseAssignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO license_assignments (id, license_id, product_id, active, notes, assigned_at, removed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.LicenseID, a.ProductID, a.Active, a.Notes, a.AssignedAt, a.RemovedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAssignment
		}
		return fmt.Errorf("create license assignment: %w", err)
	}
	return nil
}

// GetActive devuelve la asignación activa del par (licencia, producto), o nil.
func (r *LicenseAssignmentRepo) GetActive(licenseID, productID string) (*entity.LicenseAssignment, error) {
	query := `
		SELECT id, license_id, product_id, active, notes, assigned_at, removed_at
		FROM license_assignments
		WHERE license_id = $1 AND product_id = $2 AND active`
	var a entity.LicenseAssignment
	err := r.q.QueryRow(context.Background(), query, licenseID, productID).Scan(
		&a.ID, &a.LicenseID, &a.ProductID, &a.Active, &a.Notes, &a.AssignedAt, &a.RemovedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active assignment: %w", err)
	}
	return &a, nil
}

// Deactivate marca la asignación como inactiva conservando el registro.
func (r *LicenseAssignmentRepo) Deactivate(id string, removedAt time.Time) error {
	query := `UPDATE license_assignments SET active = false, removed_at = $2 WHERE id = $1 AND active`
	tag, err := r.q.Exec(context.Background(), query, id, removedAt)
	if err != nil {
		return fmt.Errorf("deactivate assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByLicense lista el historial de asignaciones de una licencia.
func (r *LicenseAssignmentRepo) ListByLicense(licenseID string) ([]*entity.LicenseAssignment, error) {
	query := `
		SELECT id, license_id, product_id, active, notes, assigned_at, removed_at
		FROM license_assignments WHERE license_id = $1 ORDER BY assigned_at DESC`
	rows, err := r.q.Query(context.Background(), query, licenseID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.LicenseAssignment
	for rows.Next() {
		var a entity.LicenseAssignment
		if err := rows.Scan(&a.ID, &a.LicenseID, &a.ProductID, &a.Active, &a.Notes, &a.AssignedAt, &a.RemovedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
