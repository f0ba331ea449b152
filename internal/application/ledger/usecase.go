package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
	"github.com/jhoicas/activos-ti/internal/domain/repository"
	"github.com/jhoicas/activos-ti/pkg/metrics"
)

// LedgerUseCase es el libro de movimientos: único mutador autorizado de la
// cantidad de un producto. Cada cambio queda registrado como un movimiento
// inmutable con snapshot antes/después, dentro de una transacción con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner TxRunner
	typeRepo repository.MovementTypeRepository
	movRepo  repository.MovementRepository
	prodRepo repository.ProductRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	typeRepo repository.MovementTypeRepository,
	movRepo repository.MovementRepository,
	prodRepo repository.ProductRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		typeRepo: typeRepo,
		movRepo:  movRepo,
		prodRepo: prodRepo,
	}
}

// MovementInput entrada para aplicar un movimiento.
type MovementInput struct {
	ProductID     string
	TypeID        string
	Quantity      int64 // siempre positivo; la dirección la da el tipo
	ActorID       string
	Reason        string
	Reference     string
	OriginID      *string
	DestinationID *string
}

// ApplyMovement valida la entrada, bloquea la fila del producto, calcula
// cantidad_después = cantidad_antes ± cantidad según la dirección del tipo,
// y persiste el movimiento junto con la nueva cantidad como unidad atómica.
//
// Una salida que dejaría la cantidad en negativo se rechaza con
// domain.ErrInsufficientStock sin tocar el estado. Tipos con
// AffectsStock == false se registran con la cantidad sin cambios.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if input.ProductID == "" || input.TypeID == "" || input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	movType, err := uc.typeRepo.GetByID(input.TypeID)
	if err != nil {
		return nil, err
	}
	if movType == nil {
		return nil, domain.ErrNotFound
	}
	if !movType.Active {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var mov *entity.Movement

	// Transacción: bloqueo de fila, append del movimiento y update de la
	// cantidad; Commit si todo ok, Rollback si algo falla (TxRunner.Run).
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.IsActive() {
			return domain.ErrInvalidInput
		}

		before := product.Quantity
		after := before
		if movType.AffectsStock {
			if movType.Inbound {
				after = before + input.Quantity
			} else {
				after = before - input.Quantity
			}
		}
		if after < 0 {
			return domain.ErrInsufficientStock
		}

		mov = &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      input.ProductID,
			TypeID:         movType.ID,
			Quantity:       input.Quantity,
			QuantityBefore: before,
			QuantityAfter:  after,
			ActorID:        input.ActorID,
			Reason:         input.Reason,
			Reference:      input.Reference,
			OriginID:       input.OriginID,
			DestinationID:  input.DestinationID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.UpdateQuantity(product.ID, after, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.MovementsApplied.WithLabelValues(movType.Name).Inc()
	return mov, nil
}

// GetHistory devuelve el historial de movimientos de un producto, más
// reciente primero. Solo lectura, idempotente.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.prodRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.movRepo.ListByProduct(productID, limit, offset)
}
