package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti/internal/application/accounts"
	"github.com/jhoicas/activos-ti/internal/application/dto"
)

// AccountHandler maneja los secretos de cuentas y equipos.
type AccountHandler struct {
	accounts *accounts.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *accounts.AccountUseCase) *AccountHandler {
	return &AccountHandler{accounts: uc}
}

// SetPassword guarda la contraseña de una cuenta (se persiste cifrada).
// PUT /api/accounts/:id/password
func (h *AccountHandler) SetPassword(c *fiber.Ctx) error {
	var in dto.SecretRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.accounts.SetPassword(c.Context(), c.Params("id"), in.Value); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevealPassword devuelve la contraseña de una cuenta descifrada.
// GET /api/accounts/:id/password
func (h *AccountHandler) RevealPassword(c *fiber.Ctx) error {
	plain, err := h.accounts.RevealPassword(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.SecretResponse{Value: plain, Set: plain != ""})
}

// SetDevicePassword guarda la credencial de un equipo.
// PUT /api/devices/:id/password
func (h *AccountHandler) SetDevicePassword(c *fiber.Ctx) error {
	var in dto.SecretRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.accounts.SetDevicePassword(c.Context(), c.Params("id"), in.Value); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevealDevicePassword devuelve la credencial de un equipo descifrada.
// GET /api/devices/:id/password
func (h *AccountHandler) RevealDevicePassword(c *fiber.Ctx) error {
	plain, err := h.accounts.RevealDevicePassword(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.SecretResponse{Value: plain, Set: plain != ""})
}
