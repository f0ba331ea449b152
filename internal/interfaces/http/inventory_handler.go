package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti/internal/application/dto"
	"github.com/jhoicas/activos-ti/internal/application/ledger"
	"github.com/jhoicas/activos-ti/internal/domain"
	"github.com/jhoicas/activos-ti/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos.
type InventoryHandler struct {
	ledger *ledger.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: uc}
}

// ApplyMovement registra un movimiento de inventario.
// POST /api/inventory/movements
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.ApplyMovement(c.Context(), ledger.MovementInput{
		ProductID:     in.ProductID,
		TypeID:        in.TypeID,
		Quantity:      in.Quantity,
		ActorID:       in.ActorID,
		Reason:        in.Reason,
		Reference:     in.Reference,
		OriginID:      in.OriginID,
		DestinationID: in.DestinationID,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// GetHistory historial de movimientos de un producto, más reciente primero.
// GET /api/products/:id/movements
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	movements, err := h.ledger.GetHistory(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		TypeID:         m.TypeID,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		ActorID:        m.ActorID,
		Reason:         m.Reason,
		Reference:      m.Reference,
		OriginID:       m.OriginID,
		DestinationID:  m.DestinationID,
		CreatedAt:      m.CreatedAt,
	}
}

// mapDomainError traduce los errores de dominio a códigos HTTP. Los errores
// no tipados se reportan como 500 sin filtrar el detalle interno.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrNoSeatsAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SEATS", Message: "no hay licencias disponibles"})
	case errors.Is(err, domain.ErrDuplicateAssignment):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_ASSIGNMENT", Message: "la licencia ya está asignada al producto"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	case errors.Is(err, domain.ErrInvalidCiphertext):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CIPHERTEXT", Message: "el secreto almacenado no se pudo descifrar"})
	case errors.Is(err, domain.ErrMissingEncryptionKey):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "VAULT_CONFIG", Message: "vault sin clave configurada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
