package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para el libro de compras.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Purchase, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Purchase, error)
	Update(ctx context.Context, p *entity.Purchase) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
