package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti/internal/application/dto"
	"github.com/jhoicas/activos-ti/internal/application/licensing"
)

// LicenseHandler maneja asignaciones de licencias y su clave cifrada.
type LicenseHandler struct {
	licensing *licensing.LicensingUseCase
}

// NewLicenseHandler construye el handler.
func NewLicenseHandler(uc *licensing.LicensingUseCase) *LicenseHandler {
	return &LicenseHandler{licensing: uc}
}

// Assign asigna un puesto de la licencia a un producto.
// POST /api/licenses/:id/assignments
func (h *LicenseHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignLicenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asg, err := h.licensing.Assign(c.Context(), c.Params("id"), in.ProductID, in.Notes)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          asg.ID,
		"license_id":  asg.LicenseID,
		"product_id":  asg.ProductID,
		"assigned_at": asg.AssignedAt,
	})
}

// Unassign libera el puesto asignado a un producto.
// DELETE /api/licenses/:id/assignments/:productID
func (h *LicenseHandler) Unassign(c *fiber.Ctx) error {
	if err := h.licensing.Unassign(c.Context(), c.Params("id"), c.Params("productID")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStatus licencia con su estado de vencimiento calculado.
// GET /api/licenses/:id
func (h *LicenseHandler) GetStatus(c *fiber.Ctx) error {
	st, err := h.licensing.GetStatus(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.LicenseStatusResponse{
		ID:             st.License.ID,
		Name:           st.License.Name,
		Type:           st.License.Type,
		TotalSeats:     st.License.TotalSeats,
		AvailableSeats: st.License.AvailableSeats,
		ExpiresAt:      st.License.ExpiresAt,
		ExpiryStatus:   string(st.Expiry),
		DaysLeft:       st.DaysLeft,
		Active:         st.License.Active,
	})
}

// SetKey guarda la clave de la licencia (se persiste cifrada).
// PUT /api/licenses/:id/key
func (h *LicenseHandler) SetKey(c *fiber.Ctx) error {
	var in dto.SecretRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.licensing.SetKey(c.Context(), c.Params("id"), in.Value); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevealKey devuelve la clave de la licencia descifrada.
// GET /api/licenses/:id/key
func (h *LicenseHandler) RevealKey(c *fiber.Ctx) error {
	plain, err := h.licensing.RevealKey(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.SecretResponse{Value: plain, Set: plain != ""})
}
