package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// BillRepository puerto de persistencia para facturas.
type BillRepository interface {
	Create(ctx context.Context, b *entity.Bill) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Bill, error)
	// GetByRepairID devuelve la factura ligada a una reparación, o
	// (nil, nil) si no hay ninguna. Si hubiera más de una (la unicidad es
	// por convención, no forzada) devuelve la más antigua.
	GetByRepairID(ctx context.Context, repairID primitive.ObjectID) (*entity.Bill, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Bill, error)
	Update(ctx context.Context, b *entity.Bill) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
