package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/query"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
)

var employeeListSpec = query.Spec{
	SearchField: "name",
	IDParam:     "_id",
	Enums: []query.Enum{
		{Param: "role", Field: "role", Values: entity.EmployeeRoles},
	},
	Ranges: []query.Range{
		{Param: "Age", Field: "age", Min: 16, Max: 80},
	},
	DateRange:  true,
	SortFields: []string{"name", "age"},
}

// EmployeeUseCase CRUD de empleados. Un renombre se propaga a las
// reparaciones que referencian al empleado por nombre.
type EmployeeUseCase struct {
	repo       repository.EmployeeRepository
	propagator *repairs.RenamePropagator
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, propagator *repairs.RenamePropagator) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, propagator: propagator}
}

// Create crea un empleado. La contraseña se hashea con bcrypt y habilita el
// login del empleado con su rol.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*entity.Employee, error) {
	now := time.Now()
	e := &entity.Employee{
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Phone:     in.Phone,
		Age:       in.Age,
		Direction: in.Direction,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	e.PasswordHash = hash

	existing, _ := uc.repo.GetByName(ctx, e.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID obtiene un empleado. (nil, nil) si no existe.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, idHex string) (*entity.Employee, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista empleados según los query params crudos.
func (uc *EmployeeUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Employee, error) {
	return uc.repo.List(ctx, employeeListSpec.Build(params))
}

// Update reemplaza los campos del empleado. Password vacío conserva la
// contraseña actual. Si el nombre cambió, propaga el renombre.
func (uc *EmployeeUseCase) Update(ctx context.Context, idHex string, in dto.UpdateEmployeeRequest) (*entity.Employee, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	oldName := e.Name
	e.Name = in.Name
	e.Email = in.Email
	e.Role = in.Role
	e.Phone = in.Phone
	e.Age = in.Age
	e.Direction = in.Direction
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		e.PasswordHash = hash
	}
	if e.Name != oldName {
		existing, _ := uc.repo.GetByName(ctx, e.Name)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	if e.Name != oldName {
		uc.propagator.EmployeeRenamed(ctx, oldName, e.Name)
	}
	return e, nil
}

// Delete elimina un empleado.
func (uc *EmployeeUseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repo.Delete(ctx, id)
}

func hashPassword(password string) (string, error) {
	if n := utf8.RuneCountInString(password); n < 8 || n > 64 {
		return "", domain.Validation("password debe tener entre 8 y 64 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
