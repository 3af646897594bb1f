package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// HardwareHandler maneja las peticiones HTTP de equipos del taller.
type HardwareHandler struct {
	uc *usecase.HardwareUseCase
}

// NewHardwareHandler construye el handler.
func NewHardwareHandler(uc *usecase.HardwareUseCase) *HardwareHandler {
	return &HardwareHandler{uc: uc}
}

// Create POST /api/hardwares
func (h *HardwareHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHardwareRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	hw, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(hw)
}

// GetByID GET /api/hardwares/:id
func (h *HardwareHandler) GetByID(c *fiber.Ctx) error {
	hw, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if hw == nil {
		return notFound(c, "Equipo no encontrado")
	}
	return c.JSON(hw)
}

// List GET /api/hardwares?q=&priority=&minCost=&maxCost=&minStock=&maxStock=&order=
func (h *HardwareHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/hardwares/:id
func (h *HardwareHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateHardwareRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	hw, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if hw == nil {
		return notFound(c, "Equipo no encontrado")
	}
	return c.JSON(hw)
}

// Restock PUT /api/hardwares/add/:id
func (h *HardwareHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	hw, err := h.uc.Restock(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	if hw == nil {
		return notFound(c, "Equipo no encontrado")
	}
	return c.JSON(hw)
}

// Delete DELETE /api/hardwares/:id
func (h *HardwareHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Equipo no encontrado")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
