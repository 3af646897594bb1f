package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// PurchaseHandler maneja las peticiones HTTP del libro de compras.
type PurchaseHandler struct {
	uc *usecase.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return notFound(c, "Compra no encontrada")
	}
	return c.JSON(p)
}

// List GET /api/purchases?q=&type=&minCost=&maxCost=&order=
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/purchases/:id
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return notFound(c, "Compra no encontrada")
	}
	return c.JSON(p)
}

// Delete DELETE /api/purchases/:id
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Compra no encontrada")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
