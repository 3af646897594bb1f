package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// RepairHandler maneja las peticiones HTTP de reparaciones.
type RepairHandler struct {
	uc *repairs.UseCase
}

// NewRepairHandler construye el handler.
func NewRepairHandler(uc *repairs.UseCase) *RepairHandler {
	return &RepairHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reparación
// @Description  Descuenta el stock del repuesto y crea la factura ligada. El
// @Description  fallo de la factura no revierte la reparación: queda en
// @Description  side_effects.
// @Tags         repairs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRepairRequest  true  "reparación"
// @Success      201   {object}  dto.RepairResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/repairs [post]
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/repairs/:id
func (h *RepairHandler) GetByID(c *fiber.Ctx) error {
	rep, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if rep == nil {
		return notFound(c, "Reparación no encontrada")
	}
	return c.JSON(rep)
}

// List GET /api/repairs?q=&status=&type=&minPrice=&maxPrice=&order=
func (h *RepairHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/repairs/:id
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "Reparación no encontrada")
	}
	return c.JSON(out)
}

// SyncBill PUT /api/repairs/bill/:id — resincroniza la factura de la
// reparación sin modificarla.
func (h *RepairHandler) SyncBill(c *fiber.Ctx) error {
	out, err := h.uc.SyncBill(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "Reparación no encontrada")
	}
	return c.JSON(out)
}

// Delete DELETE /api/repairs/:id
func (h *RepairHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Reparación no encontrada")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
