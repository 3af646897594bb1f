package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia para empleados.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Employee, error)
	GetByName(ctx context.Context, name string) (*entity.Employee, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
