package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo adaptador de persistencia para empleados.
type EmployeeRepo struct {
	col *mongo.Collection
}

// NewEmployeeRepository construye el adaptador sobre la colección employees.
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepo {
	return &EmployeeRepo{col: db.Collection("employees")}
}

// Create persiste un empleado nuevo.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por id. (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Employee, error) {
	var e entity.Employee
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// GetByName obtiene un empleado por nombre (ya normalizado a minúsculas).
func (r *EmployeeRepo) GetByName(ctx context.Context, name string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by name: %w", err)
	}
	return &e, nil
}

// List devuelve los empleados que cumplen el criterio.
func (r *EmployeeRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Employee, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	employees := []*entity.Employee{}
	if err := cur.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

// Update reemplaza el documento del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	e.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un empleado por id.
func (r *EmployeeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
