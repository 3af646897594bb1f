package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// BillHandler maneja las peticiones HTTP de facturas.
type BillHandler struct {
	uc *usecase.BillUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *usecase.BillUseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Create POST /api/bills
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	bill, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// GetByID GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if bill == nil {
		return notFound(c, "Factura no encontrada")
	}
	return c.JSON(bill)
}

// List GET /api/bills?q=&id_repair=&minAmount=&maxAmount=&order=
func (h *BillHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/bills/:id
func (h *BillHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	bill, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if bill == nil {
		return notFound(c, "Factura no encontrada")
	}
	return c.JSON(bill)
}

// Delete DELETE /api/bills/:id
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Factura no encontrada")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
