package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.MovementTypeRepository = (*MovementTypeRepo)(nil)

const movementColumns = `id, product_id, type_id, quantity, quantity_before, quantity_after,
		actor_id, reason, reference, origin_id, destination_id, created_at`

// MovementRepo implementación sobre PostgreSQL de la tabla append-only de
// movimientos. Deliberadamente no expone UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type_id, quantity, quantity_before, quantity_after,
			actor_id, reason, reference, origin_id, destination_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.TypeID, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.ActorID, m.Reason, m.Reference, m.OriginID, m.DestinationID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByProduct lista el historial de un producto, más reciente primero.
// El orden secundario por id hace el listado estable entre llamadas.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row, m *entity.Movement) error {
	return row.Scan(
		&m.ID, &m.ProductID, &m.TypeID, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.ActorID, &m.Reason, &m.Reference, &m.OriginID, &m.DestinationID, &m.CreatedAt,
	)
}

// MovementTypeRepo catálogo de tipos de movimiento sobre PostgreSQL.
type MovementTypeRepo struct {
	q Querier
}

// NewMovementTypeRepository construye el adaptador.
func NewMovementTypeRepository(q Querier) *MovementTypeRepo {
	return &MovementTypeRepo{q: q}
}

// GetByID obtiene un tipo de movimiento. Devuelve nil si no existe.
func (r *MovementTypeRepo) GetByID(id string) (*entity.MovementType, error) {
	query := `SELECT id, name, description, inbound, affects_stock, active
		FROM movement_types WHERE id = $1`
	var t entity.MovementType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Inbound, &t.AffectsStock, &t.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement type: %w", err)
	}
	return &t, nil
}

// List lista los tipos de movimiento activos.
func (r *MovementTypeRepo) List() ([]*entity.MovementType, error) {
	query := `SELECT id, name, description, inbound, affects_stock, active
		FROM movement_types WHERE active ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list movement types: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementType
	for rows.Next() {
		var t entity.MovementType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Inbound, &t.AffectsStock, &t.Active); err != nil {
			return nil, fmt.Errorf("scan movement type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
