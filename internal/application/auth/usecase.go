package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase login de empleados. El rol del empleado viaja en el token y decide
// el acceso RBAC en el middleware HTTP.
type UseCase struct {
	employees repository.EmployeeRepository
	jwtCfg    JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(employees repository.EmployeeRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{employees: employees, jwtCfg: jwtCfg}
}

// Login verifica nombre/contraseña contra el hash bcrypt del empleado y
// genera el JWT. Devuelve ErrUnauthorized sin distinguir si el empleado no
// existe o la contraseña no coincide.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	emp, err := uc.employees.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		emp.ID.Hex(),
		emp.Name,
		emp.Role,
		uc.jwtCfg.Issuer,
		uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Employee: emp}, nil
}
