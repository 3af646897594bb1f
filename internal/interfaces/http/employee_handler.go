package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
)

// EmployeeHandler maneja las peticiones HTTP de empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create POST /api/employees
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	emp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return conflict(c, "ya existe un empleado con ese nombre")
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(emp)
}

// GetByID GET /api/employees/:id
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	emp, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if emp == nil {
		return notFound(c, "Empleado no encontrado")
	}
	return c.JSON(emp)
}

// List GET /api/employees?q=&role=&minAge=&maxAge=&order=
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Queries())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	emp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return conflict(c, "ya existe un empleado con ese nombre")
		}
		return respondError(c, err)
	}
	if emp == nil {
		return notFound(c, "Empleado no encontrado")
	}
	return c.JSON(emp)
}

// Delete DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c, "Empleado no encontrado")
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}
