package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)
var _ repository.DeviceRepository = (*DeviceRepo)(nil)

const accountColumns = `id, name, type, email, username, encrypted_password, access_url, plan,
		monthly_cost, vendor, expires_at, state, assignee_id, location_id, active, created_at, updated_at`

// AccountRepo implementación de AccountRepository sobre PostgreSQL.
// La columna encrypted_password es texto opaco del vault; este adaptador
// nunca ve texto plano.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una cuenta nueva.
func (r *AccountRepo) Create(a *entity.Account) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO accounts (id, name, type, email, username, encrypted_password, access_url, plan,
			monthly_cost, vendor, expires_at, state, assignee_id, location_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Name, a.Type, a.Email, a.Username, a.EncryptedPassword, a.AccessURL, a.Plan,
		a.MonthlyCost, a.Vendor, a.ExpiresAt, a.State, a.AssigneeID, a.LocationID, a.Active,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta. Devuelve nil si no existe.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	var a entity.Account
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Name, &a.Type, &a.Email, &a.Username, &a.EncryptedPassword, &a.AccessURL, &a.Plan,
		&a.MonthlyCost, &a.Vendor, &a.ExpiresAt, &a.State, &a.AssigneeID, &a.LocationID, &a.Active,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// UpdateEncryptedPassword guarda el texto cifrado de la contraseña.
func (r *AccountRepo) UpdateEncryptedPassword(id string, ciphertext string) error {
	query := `UPDATE accounts SET encrypted_password = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, ciphertext)
	if err != nil {
		return fmt.Errorf("update account password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cuentas paginadas.
func (r *AccountRepo) List(limit, offset int) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY type, name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Type, &a.Email, &a.Username, &a.EncryptedPassword, &a.AccessURL, &a.Plan,
			&a.MonthlyCost, &a.Vendor, &a.ExpiresAt, &a.State, &a.AssigneeID, &a.LocationID, &a.Active,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeviceRepo implementación de DeviceRepository sobre PostgreSQL.
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador.
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create persiste un equipo nuevo.
func (r *DeviceRepo) Create(d *entity.Device) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO devices (id, name, host, model, serial, username, encrypted_password, location_id, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.Host, d.Model, d.Serial, d.Username, d.EncryptedPassword,
		d.LocationID, d.Active, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create device: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo. Devuelve nil si no existe.
func (r *DeviceRepo) GetByID(id string) (*entity.Device, error) {
	query := `SELECT id, name, host, model, serial, username, encrypted_password, location_id, active, created_at
		FROM devices WHERE id = $1`
	var d entity.Device
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Host, &d.Model, &d.Serial, &d.Username, &d.EncryptedPassword,
		&d.LocationID, &d.Active, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

// UpdateEncryptedPassword guarda la credencial cifrada del equipo.
func (r *DeviceRepo) UpdateEncryptedPassword(id string, ciphertext string) error {
	query := `UPDATE devices SET encrypted_password = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, ciphertext)
	if err != nil {
		return fmt.Errorf("update device password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
