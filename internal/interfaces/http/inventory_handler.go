package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de repuestos.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create POST /api/inventories
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return conflict(c, "ya existe un repuesto con ese nombre")
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID GET /api/inventories/:id
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if inv == nil {
		return notFound(c, "Inventario no encontrado")
	}
	return c.JSON(inv)
}

// List GET /api/inventories?q=&type=&minCost=&maxCost=&minStock=&maxStock=&order=
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/inventories/:id
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return conflict(c, "ya existe un repuesto con ese nombre")
		}
		return respondError(c, err)
	}
	if inv == nil {
		return notFound(c, "Inventario no encontrado")
	}
	return c.JSON(inv)
}

// Restock godoc
// @Summary      Reabastecer repuesto
// @Tags         inventories
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "id del repuesto"
// @Param        body  body  dto.RestockRequest  true  "amount en (0, 80]"
// @Success      200   {object}  entity.Inventory
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventories/add/{id} [put]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Restock(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return respondError(c, err)
	}
	if inv == nil {
		return notFound(c, "Inventario no encontrado")
	}
	return c.JSON(inv)
}

// Delete DELETE /api/inventories/:id
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Inventario no encontrado")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
