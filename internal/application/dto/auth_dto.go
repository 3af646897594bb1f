package dto

import "github.com/jmoralesv/taller-api/internal/domain/entity"

// LoginRequest credenciales de un empleado.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse token emitido y empleado autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee *entity.Employee `json:"employee"`
}
